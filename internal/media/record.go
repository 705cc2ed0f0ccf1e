// Package media defines the metadata record shared by the probing and
// duplicate-detection layers. Records are produced once per discovered
// file by the metadata provider and cached for the life of the process.
package media

import "fmt"

// ContentType classifies what a video file contains.
type ContentType string

const (
	ContentMovie     ContentType = "movie"
	ContentTVEpisode ContentType = "tv_episode"
	ContentUnknown   ContentType = "unknown"
)

// ResolutionCategory is a coarse resolution tier derived from frame height.
type ResolutionCategory int

const (
	CategoryUnknown ResolutionCategory = iota
	CategorySD
	CategoryHD
	CategoryFullHD
	Category4K
	Category8KPlus
)

func (c ResolutionCategory) String() string {
	switch c {
	case CategorySD:
		return "SD"
	case CategoryHD:
		return "HD"
	case CategoryFullHD:
		return "FullHD"
	case Category4K:
		return "4K"
	case Category8KPlus:
		return "8K+"
	default:
		return "Unknown"
	}
}

// CategorizeHeight maps a frame height to its resolution tier.
// Thresholds mirror the quality scoring table so the tier and the
// resolution points never disagree.
func CategorizeHeight(height int) ResolutionCategory {
	switch {
	case height >= 4320:
		return Category8KPlus
	case height >= 2160:
		return Category4K
	case height >= 1080:
		return CategoryFullHD
	case height >= 720:
		return CategoryHD
	case height > 0:
		return CategorySD
	default:
		return CategoryUnknown
	}
}

// Comparison holds the relative metrics of a record against the best
// member of its duplicate group. Percentages are never negative and
// default to 100 when a denominator is missing.
type Comparison struct {
	ResolutionPercent float64
	ResolutionDiff    string
	BitratePercent    float64
	BitrateDiff       string
	SizePercent       float64
	SizeDiff          string
	SizeDiffValue     int64 // bestSize - thisSize, negative when this file is larger
	QualityPercent    float64
}

// Record is the technical metadata of a single video file plus its title
// classification. Missing or failed fields stay at their zero values;
// consumers must tolerate zeros everywhere except Path.
type Record struct {
	Path     string
	Filename string

	Width       int
	Height      int
	Resolution  string // "1920x1080"
	BitrateMbps float64
	Bitrate     string // "8.0 Mbps" or "unknown"
	Codec       string
	Container   string
	DurationSec float64
	Duration    string // "119m 59s" or "unknown"
	FPS         float64
	SizeBytes   int64

	ContentType ContentType
	Title       string
	Season      int
	Episode     int
	Category    ResolutionCategory

	QualityScore     float64
	IsHighestQuality bool
	ComparedToBest   *Comparison
}

// EpisodeLabel formats the season/episode marker, e.g. "S01E02".
func (r *Record) EpisodeLabel() string {
	return fmt.Sprintf("S%02dE%02d", r.Season, r.Episode)
}
