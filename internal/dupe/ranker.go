package dupe

import (
	"math"
	"sort"
	"strings"

	"github.com/Nomadcxx/vidsweep/internal/media"
)

// Quality score weights. Resolution, bitrate, codec and fps contribute
// fixed point ranges; the total always lands in [12, 100].
const (
	resPointsTop    = 40 // 2160p and above
	resPointsFullHD = 30
	resPointsHD     = 20
	resPointsSD     = 10
	resPointsFloor  = 5

	bitratePointsCap   = 30
	bitratePointsPerMb = 3

	codecPointsModern = 20 // hevc, h265, av1
	codecPointsH264   = 15
	codecPointsFloor  = 5

	fpsPointsHigh   = 10 // >= 60
	fpsPointsMedium = 7  // >= 30
	fpsPointsCinema = 5  // >= 24
	fpsPointsFloor  = 2
)

var (
	modernCodecs = map[string]bool{"hevc": true, "h265": true, "av1": true}
	avcCodecs    = map[string]bool{"h264": true, "avc": true}
)

// QualityScore computes the numeric quality estimate for a record from
// resolution, bitrate, codec and fps. Zero/unknown inputs fall through
// to the floor points instead of failing.
func QualityScore(r *media.Record) float64 {
	var score float64

	switch {
	case r.Height >= 2160:
		score += resPointsTop
	case r.Height >= 1080:
		score += resPointsFullHD
	case r.Height >= 720:
		score += resPointsHD
	case r.Height >= 480:
		score += resPointsSD
	default:
		score += resPointsFloor
	}

	score += math.Min(bitratePointsCap, r.BitrateMbps*bitratePointsPerMb)

	codec := strings.ToLower(r.Codec)
	switch {
	case modernCodecs[codec]:
		score += codecPointsModern
	case avcCodecs[codec]:
		score += codecPointsH264
	default:
		score += codecPointsFloor
	}

	switch {
	case r.FPS >= 60:
		score += fpsPointsHigh
	case r.FPS >= 30:
		score += fpsPointsMedium
	case r.FPS >= 24:
		score += fpsPointsCinema
	default:
		score += fpsPointsFloor
	}

	return score
}

// CompareQuality reports whether a ranks strictly before b in quality
// order. The key is the tuple (width*height, bitrate, score, -size)
// compared lexicographically: pixels, bitrate and score descending, and
// among otherwise equal files the smaller one wins.
func CompareQuality(a, b *media.Record) bool {
	pa, pb := a.Width*a.Height, b.Width*b.Height
	if pa != pb {
		return pa > pb
	}
	if a.BitrateMbps != b.BitrateMbps {
		return a.BitrateMbps > b.BitrateMbps
	}
	sa, sb := QualityScore(a), QualityScore(b)
	if sa != sb {
		return sa > sb
	}
	return a.SizeBytes < b.SizeBytes
}

// SortByQuality orders records best-first using the quality sort key.
// The sort is stable so callers controlling input order get
// deterministic output for fully tied records.
func SortByQuality(records []*media.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return CompareQuality(records[i], records[j])
	})
}

// RankCluster sorts a cluster best-first, fills in quality scores and
// marks exactly one member, cluster[0], as the highest quality.
func RankCluster(cluster []*media.Record) {
	SortByQuality(cluster)
	for i, r := range cluster {
		r.QualityScore = QualityScore(r)
		r.IsHighestQuality = i == 0
	}
}
