// Package retention deletes or relocates files marked by the selection
// policy. Every entry is processed independently: an I/O failure is
// recorded and the batch continues.
package retention

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/Nomadcxx/vidsweep/internal/logging"
	"github.com/Nomadcxx/vidsweep/internal/media"
)

// ErrDestinationExists is reported when a move would overwrite a file
// with the same basename already present at the destination.
var ErrDestinationExists = errors.New("destination file already exists")

// Entry describes the outcome for a single selected path.
type Entry struct {
	Path        string
	Destination string // set for moved entries
	Reason      string // set for failed entries
	Bytes       int64
}

// Report aggregates the results of one retention pass. TotalFreedBytes
// counts every processed entry, failed ones included; callers wanting
// strict numbers can re-sum Deleted/Moved.
type Report struct {
	Deleted         []Entry
	Moved           []Entry
	Skipped         []Entry
	Failed          []Entry
	TotalFreedBytes int64
}

// Executor applies a selection set to the filesystem.
type Executor struct {
	sizes *media.SizeCache
	log   *logging.Logger
}

// New creates an Executor sharing the engine's size cache so reported
// byte counts match what the engine displayed.
func New(sizes *media.SizeCache, log *logging.Logger) *Executor {
	if sizes == nil {
		sizes = media.NewSizeCache()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Executor{sizes: sizes, log: log}
}

// Execute processes every selected path in sorted order. With dryRun set
// nothing on disk is touched and every entry lands in Skipped. With a
// destinationDir the files are moved there, refusing to overwrite; with
// none they are deleted permanently. The selection set itself is left
// untouched so the caller can review the report before clearing it.
func (e *Executor) Execute(selection map[string]bool, dryRun bool, destinationDir string) *Report {
	report := &Report{}

	paths := make([]string, 0, len(selection))
	for p := range selection {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		size := e.sizes.Get(path)
		report.TotalFreedBytes += size

		if dryRun {
			e.log.Info("retention", "would remove", logging.F("path", path), logging.F("bytes", size))
			report.Skipped = append(report.Skipped, Entry{Path: path, Bytes: size})
			continue
		}

		if destinationDir != "" {
			dst, err := e.moveOut(path, destinationDir)
			if err != nil {
				e.log.Error("retention", "move failed", err, logging.F("path", path))
				report.Failed = append(report.Failed, Entry{Path: path, Reason: err.Error(), Bytes: size})
				continue
			}
			e.log.Info("retention", "moved", logging.F("path", path), logging.F("dest", dst))
			report.Moved = append(report.Moved, Entry{Path: path, Destination: dst, Bytes: size})
			continue
		}

		if err := os.Remove(path); err != nil {
			e.log.Error("retention", "delete failed", err, logging.F("path", path))
			report.Failed = append(report.Failed, Entry{Path: path, Reason: err.Error(), Bytes: size})
			continue
		}
		e.log.Info("retention", "deleted", logging.F("path", path), logging.F("bytes", size))
		report.Deleted = append(report.Deleted, Entry{Path: path, Bytes: size})
	}

	return report
}

// moveOut relocates path into destinationDir, keeping its basename.
// An existing file at the destination is an explicit failure, never a
// silent overwrite.
func (e *Executor) moveOut(path, destinationDir string) (string, error) {
	if err := os.MkdirAll(destinationDir, 0755); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}

	dst := filepath.Join(destinationDir, filepath.Base(path))
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}

	if err := moveFile(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// destination is on a different filesystem.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return out.Sync()
}
