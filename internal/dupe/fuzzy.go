package dupe

import (
	"math"
	"strings"

	"github.com/Nomadcxx/vidsweep/internal/media"
)

// DefaultMinSimilarity is the clustering threshold used when none is
// configured.
const DefaultMinSimilarity = 0.95

// Similarity sub-score base weights. When a sub-score is unavailable on
// either side the remaining weights are renormalized, so the result
// stays in [0, 1].
const (
	weightFilename = 0.30
	weightDuration = 0.50
	weightFormat   = 0.05
	weightCodec    = 0.05
)

// Matcher computes pairwise similarity and clusters signature buckets.
type Matcher struct {
	MinSimilarity float64
}

// NewMatcher returns a Matcher with the given threshold, falling back to
// the default for values <= 0.
func NewMatcher(minSimilarity float64) *Matcher {
	if minSimilarity <= 0 {
		minSimilarity = DefaultMinSimilarity
	}
	return &Matcher{MinSimilarity: minSimilarity}
}

// Similarity blends filename, duration, container and codec agreement
// into a single [0, 1] score.
func (m *Matcher) Similarity(a, b *media.Record) float64 {
	var score, active float64

	// Filename words: Jaccard over normalized word sets. An empty word
	// set on either side counts as a full match so missing data is not
	// penalized.
	wordsA := strings.Fields(Normalize(a.Filename))
	wordsB := strings.Fields(Normalize(b.Filename))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		score += weightFilename
	} else {
		score += jaccard(wordsA, wordsB) * weightFilename
	}
	active += weightFilename

	if a.DurationSec > 0 && b.DurationSec > 0 {
		score += math.Min(a.DurationSec, b.DurationSec) / math.Max(a.DurationSec, b.DurationSec) * weightDuration
		active += weightDuration
	}

	if known(a.Container) && known(b.Container) {
		if strings.EqualFold(a.Container, b.Container) {
			score += weightFormat
		}
		active += weightFormat
	}

	if known(a.Codec) && known(b.Codec) {
		if strings.EqualFold(a.Codec, b.Codec) {
			score += weightCodec
		}
		active += weightCodec
	}

	if active == 0 {
		return 0
	}
	return score / active
}

// AreSimilar decides whether two records belong in the same cluster.
// Identical paths and TV episodes with matching title/season/episode
// bypass the similarity threshold entirely.
func (m *Matcher) AreSimilar(a, b *media.Record) bool {
	if a.Path == b.Path {
		return true
	}
	if a.ContentType == media.ContentTVEpisode && b.ContentType == media.ContentTVEpisode &&
		a.Season == b.Season && a.Episode == b.Episode &&
		Normalize(a.Title) == Normalize(b.Title) {
		return true
	}
	return m.Similarity(a, b) >= m.MinSimilarity
}

// ClusterBucket splits one signature bucket into similarity clusters.
// The bucket is sorted by the quality key first, then clustered greedily:
// the best unclustered file seeds a cluster and every remaining
// unclustered file similar to that seed joins it. Membership is decided
// against the seed only, never between members, and a file that fails
// the seed test stays out even if it is transitively reachable through
// another member. Replacing this with union-find changes the groupings.
func (m *Matcher) ClusterBucket(bucket []*media.Record) [][]*media.Record {
	sorted := make([]*media.Record, len(bucket))
	copy(sorted, bucket)
	SortByQuality(sorted)

	clustered := make(map[string]bool, len(sorted))
	var clusters [][]*media.Record

	for i, seed := range sorted {
		if clustered[seed.Path] {
			continue
		}
		cluster := []*media.Record{seed}
		clustered[seed.Path] = true

		for _, candidate := range sorted[i+1:] {
			if clustered[candidate.Path] {
				continue
			}
			if m.AreSimilar(seed, candidate) {
				cluster = append(cluster, candidate)
				clustered[candidate.Path] = true
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}

func jaccard(a, b []string) float64 {
	setA := make(map[string]bool, len(a))
	for _, w := range a {
		setA[w] = true
	}
	setB := make(map[string]bool, len(b))
	for _, w := range b {
		setB[w] = true
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func known(s string) bool {
	return s != "" && !strings.EqualFold(s, "unknown")
}
