package probe

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Nomadcxx/vidsweep/internal/logging"
	"github.com/Nomadcxx/vidsweep/internal/media"
)

// Failure records one file that could not be probed.
type Failure struct {
	Path string
	Err  error
}

// ProbeAll extracts metadata for every path with a bounded worker pool
// and returns the records in input order, giving the grouping engine a
// stable snapshot. Individual failures are collected, not propagated:
// a file that cannot be probed is simply absent from the result.
// onProgress, when non-nil, is called once per finished path.
func ProbeAll(ctx context.Context, p Provider, paths []string, workers int, log *logging.Logger, onProgress func(path string)) ([]*media.Record, []Failure) {
	if workers <= 0 {
		workers = 4
	}
	if log == nil {
		log = logging.Nop()
	}

	records := make([]*media.Record, len(paths))
	var mu sync.Mutex
	var failures []Failure

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			record, err := p.Probe(ctx, path)
			if err != nil {
				log.Warn("probe", "extraction failed", logging.F("path", path), logging.F("reason", err))
				mu.Lock()
				failures = append(failures, Failure{Path: path, Err: err})
				mu.Unlock()
			} else {
				records[i] = record
			}
			if onProgress != nil {
				onProgress(path)
			}
			return nil
		})
	}
	g.Wait()

	out := make([]*media.Record, 0, len(records))
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, failures
}
