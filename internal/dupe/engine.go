package dupe

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Nomadcxx/vidsweep/internal/logging"
	"github.com/Nomadcxx/vidsweep/internal/media"
)

// Engine owns all mutable state of a duplicate-detection pass: the
// metadata cache, the file-size cache, the computed groups and the
// selection set. The grouping pipeline itself is synchronous, pure CPU
// work over a snapshot of the cached records; one mutex is enough
// because only the selection set and the size cache outlive a pass.
type Engine struct {
	mu      sync.Mutex
	matcher *Matcher
	log     *logging.Logger

	records   map[string]*media.Record
	sizes     *media.SizeCache
	groups    map[string][]*media.Record
	selection map[string]bool
}

// New creates an Engine. minSimilarity outside [0, 1] is a configuration
// error and rejected before any processing.
func New(minSimilarity float64, log *logging.Logger) (*Engine, error) {
	if minSimilarity < 0 || minSimilarity > 1 {
		return nil, fmt.Errorf("min similarity %.2f out of range [0, 1]", minSimilarity)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{
		matcher:   NewMatcher(minSimilarity),
		log:       log,
		records:   make(map[string]*media.Record),
		sizes:     media.NewSizeCache(),
		groups:    make(map[string][]*media.Record),
		selection: make(map[string]bool),
	}, nil
}

// Sizes exposes the engine's file-size cache so the retention layer
// shares the same authoritative view.
func (e *Engine) Sizes() *media.SizeCache {
	return e.sizes
}

// Add caches a record produced by the metadata provider and seeds the
// size cache with the size observed at extraction time.
func (e *Engine) Add(r *media.Record) {
	if r == nil || r.Path == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records[r.Path] = r
	e.sizes.Put(r.Path, r.SizeBytes)
}

// Records returns the cached records sorted by path. The stable order
// makes repeated grouping passes deterministic.
func (e *Engine) Records() []*media.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*media.Record, 0, len(e.records))
	for _, r := range e.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Invalidate drops all cached metadata, sizes and groups ahead of a
// rescan. The selection set survives; policies rebuild it wholesale.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records = make(map[string]*media.Record)
	e.groups = make(map[string][]*media.Record)
	e.sizes.Clear()
}

// FindDuplicates recomputes duplicate groups from scratch over the
// cached records: exact signature bucketing, then fuzzy clustering
// inside each bucket, then quality ranking and best-vs-rest annotation.
// Only clusters of two or more files are reported.
func (e *Engine) FindDuplicates() map[string][]*media.Record {
	records := e.Records()
	buckets := GroupBySignature(records)

	// Buckets are visited in signature order so group labels and any
	// collision suffixes come out identical run to run.
	sigs := make([]string, 0, len(buckets))
	for sig := range buckets {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)

	groups := make(map[string][]*media.Record)
	clusterCount := 0
	for _, sig := range sigs {
		for _, cluster := range e.matcher.ClusterBucket(buckets[sig]) {
			if len(cluster) < 2 {
				continue
			}
			RankCluster(cluster)
			AnnotateCluster(cluster)
			groups[uniqueLabel(groups, GroupLabel(cluster[0]))] = cluster
			clusterCount++
		}
	}

	e.mu.Lock()
	e.groups = groups
	e.mu.Unlock()

	e.log.Info("dupe", "duplicate pass complete",
		logging.F("files", len(records)),
		logging.F("groups", clusterCount))

	return e.Groups()
}

// Groups returns a copy of the last computed group map.
func (e *Engine) Groups() map[string][]*media.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string][]*media.Record, len(e.groups))
	for label, cluster := range e.groups {
		out[label] = append([]*media.Record(nil), cluster...)
	}
	return out
}

// Clusters returns the last computed clusters in deterministic label
// order, for policies and display.
func (e *Engine) Clusters() [][]*media.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	labels := make([]string, 0, len(e.groups))
	for label := range e.groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	out := make([][]*media.Record, 0, len(labels))
	for _, label := range labels {
		out = append(out, append([]*media.Record(nil), e.groups[label]...))
	}
	return out
}

// ApplySelection rebuilds the selection set from the current groups
// under the given policy mode. The previous selection is discarded, not
// merged, so re-running a policy is idempotent. Returns the number of
// selected paths.
func (e *Engine) ApplySelection(mode Mode) int {
	clusters := e.Clusters()
	selection := BuildSelection(clusters, mode)

	e.mu.Lock()
	e.selection = selection
	e.mu.Unlock()

	e.log.Info("dupe", "selection rebuilt",
		logging.F("mode", mode.String()),
		logging.F("selected", len(selection)))
	return len(selection)
}

// Select manually marks a path for removal. The path does not need to
// belong to any current cluster.
func (e *Engine) Select(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection[path] = true
}

// Deselect removes a path from the selection set. Removing an absent
// path is a no-op.
func (e *Engine) Deselect(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.selection, path)
}

// ClearSelection empties the selection set.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = make(map[string]bool)
}

// Selection returns a copy of the current selection set.
func (e *Engine) Selection() map[string]bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]bool, len(e.selection))
	for p := range e.selection {
		out[p] = true
	}
	return out
}

// SelectedBytes sums the cached sizes of all selected paths.
func (e *Engine) SelectedBytes() int64 {
	var total int64
	for path := range e.Selection() {
		total += e.sizes.Get(path)
	}
	return total
}

// ReconcileGroups removes paths that no longer exist on disk from the
// cached records and groups. Called after a retention pass; groups that
// shrink below two members are dropped.
func (e *Engine) ReconcileGroups() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for path := range e.records {
		if _, err := os.Stat(path); err != nil {
			delete(e.records, path)
			e.sizes.Forget(path)
		}
	}

	for label, cluster := range e.groups {
		kept := cluster[:0]
		for _, r := range cluster {
			if _, ok := e.records[r.Path]; ok {
				kept = append(kept, r)
			}
		}
		if len(kept) < 2 {
			delete(e.groups, label)
			continue
		}
		e.groups[label] = kept
	}
}

var labelCaser = cases.Title(language.English)

// GroupLabel builds the human label for a cluster from its best member:
// the title for movies, "Title - S01E02" for episodes. Falls back to the
// filename when classification produced no title.
func GroupLabel(r *media.Record) string {
	title := r.Title
	if title == "" {
		title = r.Filename
	}
	title = labelCaser.String(title)
	if r.ContentType == media.ContentTVEpisode {
		return fmt.Sprintf("%s - %s", title, r.EpisodeLabel())
	}
	return title
}

// uniqueLabel disambiguates label collisions between distinct clusters
// (same title, different durations) with a numeric suffix.
func uniqueLabel(groups map[string][]*media.Record, label string) string {
	if _, taken := groups[label]; !taken {
		return label
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", label, i)
		if _, taken := groups[candidate]; !taken {
			return candidate
		}
	}
}
