// Package naming classifies video filenames into movies and TV episodes.
// A filename with a case-insensitive S<NN>E<NN> marker is an episode; the
// text before the marker is its title. Anything else is treated as a
// movie with release markers and the year stripped from the title.
package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Nomadcxx/vidsweep/internal/media"
)

// Classification is the result of parsing a single filename.
type Classification struct {
	Type    media.ContentType
	Title   string
	Season  int
	Episode int
}

var (
	episodeSERegex = regexp.MustCompile(`(.*?)[.\s_-]*[Ss](\d{1,2})[Ee](\d{1,2})`)
	yearTokenRegex = regexp.MustCompile(`[\(\[]?\b(19|20)\d{2}\b[\)\]]?`)
	spacesRegex    = regexp.MustCompile(`\s+`)

	releasePatterns []*regexp.Regexp
)

func init() {
	patterns := []string{
		`\b\d{3,4}[pi]\b`,
		`\b(4K|UHD|HD|8K)\b`,
		`\b(HDR|DolbyVision|DoVi|DV|Dolby|Atmos|TrueHD|DTS)\b`,
		`\b(BluRay|Blu-ray|BDRip|REMUX|WEB-DL|WEBDL|WEBRip|WEB|DVDRip|HDTV)\b`,
		`\b(AMZN|NF|DSNP|HULU|ATVP|HMAX)\b`,
		`\b(x264|x265|HEVC|AVC|H\.?264|H\.?265|XviD|DivX)\b`,
		`\b(PROPER|REPACK|LIMITED|EXTENDED|UNRATED|iNTERNAL)\b`,
		`\[.*?\]`,
		`\b(8bit|10bit|12bit)\b`,
	}

	releasePatterns = make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		releasePatterns = append(releasePatterns, regexp.MustCompile(`(?i)`+pattern))
	}
}

// Classify parses a filename into its content type and title information.
// It never fails: an unparseable name comes back as a movie whose title
// is the cleaned filename stem (possibly empty).
func Classify(filename string) Classification {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	if m := episodeSERegex.FindStringSubmatch(stem); m != nil {
		season, _ := strconv.Atoi(m[2])
		episode, _ := strconv.Atoi(m[3])
		return Classification{
			Type:    media.ContentTVEpisode,
			Title:   cleanTitle(m[1]),
			Season:  season,
			Episode: episode,
		}
	}

	return Classification{
		Type:  media.ContentMovie,
		Title: cleanTitle(stripReleaseMarkers(stem)),
	}
}

// stripReleaseMarkers removes quality, source, codec and year tokens from
// a movie title candidate. Markers are matched before separators are
// rewritten so hyphenated tokens like WEB-DL match whole.
func stripReleaseMarkers(s string) string {
	for _, re := range releasePatterns {
		s = re.ReplaceAllString(s, " ")
	}
	s = yearTokenRegex.ReplaceAllString(s, " ")
	return s
}

func cleanTitle(s string) string {
	s = separatorsToSpaces(s)
	s = spacesRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func separatorsToSpaces(s string) string {
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}
