package dupe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Nomadcxx/vidsweep/internal/media"
)

// Mode selects which cluster members get marked for removal.
type Mode int

const (
	// KeepBest keeps the quality-ranked best member and marks the rest.
	KeepBest Mode = iota
	// KeepSmallest keeps the smallest file regardless of quality.
	KeepSmallest
	// Smart keeps near-equal-quality files that are meaningfully
	// smaller, and can sacrifice an oversized reference file instead.
	Smart
)

func (m Mode) String() string {
	switch m {
	case KeepBest:
		return "keep_best"
	case KeepSmallest:
		return "keep_smallest"
	case Smart:
		return "smart"
	default:
		return "unknown"
	}
}

// ParseMode converts a config string into a Mode. Unknown modes are a
// configuration error and must abort before any processing starts.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep_best", "keepbest", "":
		return KeepBest, nil
	case "keep_smallest", "keepsmallest":
		return KeepSmallest, nil
	case "smart":
		return Smart, nil
	default:
		return KeepBest, fmt.Errorf("unknown selection mode %q (expected keep_best, keep_smallest or smart)", s)
	}
}

// Smart mode thresholds: a member is spared when its quality is within
// 10% of the best and it is more than 20% smaller; above 95% quality the
// oversized best file itself becomes the removal candidate.
const (
	smartQualityKeep    = 90
	smartQualityReplace = 95
	smartSizeSavings    = 0.20
)

// BuildSelection computes the set of paths to remove across all ranked
// clusters. The result is rebuilt from scratch; callers replace any
// previous selection wholesale rather than merging.
func BuildSelection(clusters [][]*media.Record, mode Mode) map[string]bool {
	selection := make(map[string]bool)

	for _, cluster := range clusters {
		if len(cluster) < 2 {
			continue
		}

		switch mode {
		case KeepSmallest:
			bySize := make([]*media.Record, len(cluster))
			copy(bySize, cluster)
			sort.SliceStable(bySize, func(i, j int) bool {
				return bySize[i].SizeBytes < bySize[j].SizeBytes
			})
			for _, r := range bySize[1:] {
				selection[r.Path] = true
			}

		case Smart:
			selectSmart(cluster, selection)

		default: // KeepBest
			for _, r := range cluster[1:] {
				selection[r.Path] = true
			}
		}
	}

	return selection
}

// selectSmart applies the Smart policy to one cluster. Starting from
// KeepBest, a non-best member is spared when it is near-equal quality
// (>90%) and at least 20% smaller than the best; when such a member is
// above 95% quality the best file is marked instead and the remaining
// members are left alone.
func selectSmart(cluster []*media.Record, selection map[string]bool) {
	best := cluster[0]
	bestScore := QualityScore(best)

	for _, r := range cluster[1:] {
		qualityPct := percent(QualityScore(r), bestScore)
		sizeSavings := 0.0
		if best.SizeBytes > 0 {
			sizeSavings = float64(best.SizeBytes-r.SizeBytes) / float64(best.SizeBytes)
		}

		if qualityPct > smartQualityKeep && sizeSavings > smartSizeSavings {
			if qualityPct > smartQualityReplace {
				// The big reference file is redundant next to this one.
				selection[best.Path] = true
				return
			}
			continue
		}

		selection[r.Path] = true
	}
}
