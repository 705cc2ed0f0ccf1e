package main

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Nomadcxx/vidsweep/internal/config"
	"github.com/Nomadcxx/vidsweep/internal/dupe"
	"github.com/Nomadcxx/vidsweep/internal/logging"
	"github.com/Nomadcxx/vidsweep/internal/probe"
)

// analysis bundles everything a command needs after a scan pass.
type analysis struct {
	cfg    *config.Config
	log    *logging.Logger
	engine *dupe.Engine

	filesFound  int
	filesProbed int
	filesFailed int
}

// runAnalysis loads config, discovers video files under dir, probes them
// through the bounded worker pool and runs one full duplicate pass.
func runAnalysis(ctx context.Context, dir string) (*analysis, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("unable to set up logging: %w", err)
	}
	if verbose {
		log.SetLevel(logging.LevelDebug)
	}

	engine, err := dupe.New(cfg.MinSimilarity, log)
	if err != nil {
		return nil, err
	}

	files, err := probe.FindVideoFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to scan %s: %w", dir, err)
	}
	log.Info("scan", "discovered video files", logging.F("dir", dir), logging.F("count", len(files)))

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Probing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)

	provider := probe.New(cfg.FFProbePath, 30*time.Second, log)
	records, failures := probe.ProbeAll(ctx, provider, files, cfg.ProbeWorkers, log, func(string) {
		bar.Add(1)
	})

	for _, r := range records {
		engine.Add(r)
	}
	engine.FindDuplicates()

	return &analysis{
		cfg:         cfg,
		log:         log,
		engine:      engine,
		filesFound:  len(files),
		filesProbed: len(records),
		filesFailed: len(failures),
	}, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if minSimilarity > 0 {
		cfg.MinSimilarity = minSimilarity
	}
	if modeFlag != "" {
		cfg.SelectionMode = modeFlag
	}
	if moveTo != "" {
		cfg.DestinationDir = moveTo
	}
	if workers > 0 {
		cfg.ProbeWorkers = workers
	}
	if dryRun {
		cfg.DryRun = true
	}
}
