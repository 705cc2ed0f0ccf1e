// Package dupe implements the duplicate-detection and quality-ranking
// engine: deterministic content signatures, exact bucketing, fuzzy
// similarity clustering, quality scoring, best-vs-rest comparison and
// the selection policy that marks lower-quality copies for removal.
package dupe

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/Nomadcxx/vidsweep/internal/media"
)

// qualityTokens is the fixed set of release/quality/codec markers removed
// during normalization. Changing this set changes every signature, so it
// is deliberately enumerated rather than pattern-based.
var qualityTokens = map[string]bool{
	"1080p": true, "720p": true, "480p": true, "2160p": true,
	"4k": true, "uhd": true, "hd": true, "8k": true,
	"dvdrip": true, "bdrip": true, "webdl": true, "web-dl": true,
	"webrip": true, "bluray": true, "web": true, "hdtv": true,
	"x264": true, "x265": true, "h264": true, "h265": true,
	"hevc": true, "xvid": true, "divx": true, "remux": true,
	"hdr": true, "dolby": true, "atmos": true, "truehd": true,
	"dts": true,
}

var (
	bareYearRegex = regexp.MustCompile(`^[\(\[]?\d{4}[\)\]]?$`)
	nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]`)
	knownExtRegex = regexp.MustCompile(`\.[A-Za-z0-9]{2,4}$`)
)

// Normalize reduces a filename or title to its comparable core: lowercase,
// no extension, no quality/release tokens, no year tokens, alphanumeric
// words separated by single spaces. Pure and deterministic.
func Normalize(name string) string {
	if ext := knownExtRegex.FindString(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, ".", " ")
	name = strings.ReplaceAll(name, "_", " ")

	var kept []string
	for _, word := range strings.Fields(name) {
		clean := nonAlnumRegex.ReplaceAllString(word, "")
		if clean == "" {
			continue
		}
		if qualityTokens[word] || qualityTokens[clean] {
			continue
		}
		if bareYearRegex.MatchString(word) || bareYearRegex.MatchString(clean) {
			continue
		}
		kept = append(kept, clean)
	}

	return strings.Join(kept, " ")
}

// hash8 returns the first 8 hex characters of a stable non-cryptographic
// hash. Collisions only cost an extra fuzzy comparison inside a bucket.
func hash8(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))[:8]
}

// Signature derives the coarse bucketing key for a record. TV episodes
// bucket by normalized title plus season/episode; movies and unknowns by
// normalized filename stem plus duration rounded to the whole second.
// A zero duration (failed extraction) still yields a deterministic key.
func Signature(r *media.Record) string {
	if r.ContentType == media.ContentTVEpisode {
		return fmt.Sprintf("tv:%s|s%02de%02d", hash8(Normalize(r.Title)), r.Season, r.Episode)
	}
	stem := strings.TrimSuffix(r.Filename, filepath.Ext(r.Filename))
	return fmt.Sprintf("movie:%s|%d", hash8(Normalize(stem)), int64(math.Round(r.DurationSec)))
}
