package dupe

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Nomadcxx/vidsweep/internal/media"
)

// AnnotateCluster fills in ComparedToBest for every non-best member of a
// ranked cluster. cluster[0] is the reference and keeps a nil comparison.
// No division here can panic: a zero on either side of a ratio defaults
// the percentage to 100.
func AnnotateCluster(cluster []*media.Record) {
	if len(cluster) < 2 {
		return
	}

	best := cluster[0]
	best.ComparedToBest = nil

	for _, r := range cluster[1:] {
		r.ComparedToBest = &media.Comparison{
			ResolutionPercent: percent(float64(r.Height), float64(best.Height)),
			ResolutionDiff:    fmt.Sprintf("%dp vs %dp", r.Height, best.Height),
			BitratePercent:    percent(r.BitrateMbps, best.BitrateMbps),
			BitrateDiff:       fmt.Sprintf("%.1f Mbps vs %.1f Mbps", r.BitrateMbps, best.BitrateMbps),
			SizePercent:       percent(float64(r.SizeBytes), float64(best.SizeBytes)),
			SizeDiff:          fmt.Sprintf("%s vs %s", humanize.IBytes(uint64(max64(r.SizeBytes, 0))), humanize.IBytes(uint64(max64(best.SizeBytes, 0)))),
			SizeDiffValue:     best.SizeBytes - r.SizeBytes,
			QualityPercent:    percent(QualityScore(r), QualityScore(best)),
		}
	}
}

// percent returns value/base*100, defaulting to 100 whenever either side
// is zero so missing metadata never produces a divide-by-zero or a
// misleading 0%.
func percent(value, base float64) float64 {
	if value == 0 || base == 0 {
		return 100
	}
	return value / base * 100
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
