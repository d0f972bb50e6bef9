// Package fetch retrieves FASTQ files for classified runs, organized by
// category partition. Retrieval shells out to sra-tools (prefetch +
// fasterq-dump); this package is boundary glue around the classification
// core and owns the worker pool, retries, and dbGaP skip handling.
package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-genomics/sampleatlas/internal/paths"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// Options tunes the downloader.
type Options struct {
	// Workers is the number of concurrent downloads.
	Workers int
	// MaxPerCategory caps downloads per partition; 0 means no cap.
	MaxPerCategory int
	// Retries is the number of additional attempts per run.
	Retries int
	// RetryDelay is the pause before each retry.
	RetryDelay time.Duration
	// Timeout bounds each subprocess invocation.
	Timeout time.Duration
}

// DefaultOptions mirror the operational defaults of the original pipeline.
func DefaultOptions() Options {
	return Options{
		Workers:    types.DefaultFetchWorkers,
		Retries:    2,
		RetryDelay: 30 * time.Second,
		Timeout:    30 * time.Minute,
	}
}

// Fetcher downloads runs into a provisioned output layout.
type Fetcher struct {
	layout paths.Layout
	opts   Options
	log    *zap.Logger

	// runCommand is swappable in tests; defaults to exec.
	runCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New builds a Fetcher over an output layout.
func New(layout paths.Layout, opts Options, log *zap.Logger) *Fetcher {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Fetcher{
		layout: layout,
		opts:   opts,
		log:    log,
		runCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// FetchCategories downloads every partitioned run, workers-wide. Failed
// runs are logged and counted, not fatal; the first context cancellation
// aborts the pool.
func (f *Fetcher) FetchCategories(ctx context.Context, parts map[string][]string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.Workers)

	for _, cat := range types.Categories {
		runs := parts[cat]
		if f.opts.MaxPerCategory > 0 && len(runs) > f.opts.MaxPerCategory {
			runs = runs[:f.opts.MaxPerCategory]
		}
		for _, acc := range runs {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := f.fetchRun(ctx, acc, cat); err != nil {
					f.log.Warn("run download failed",
						zap.String("run", acc), zap.String("category", cat), zap.Error(err))
				}
				return nil
			})
		}
	}
	return g.Wait()
}

// errRestricted marks dbGaP-authorized runs; they are skipped, not retried.
var errRestricted = fmt.Errorf("run requires dbGaP authorization")

// fetchRun downloads one run with retries: prefetch the SRA archive into the
// category raw directory, convert it with fasterq-dump, then drop the
// archive.
func (f *Fetcher) fetchRun(ctx context.Context, acc, category string) error {
	rawDir := f.layout.CategoryRawDir(category)
	logPath := filepath.Join(f.layout.CategoryLogsDir(category), acc+".log")

	var lastErr error
	for attempt := 0; attempt <= f.opts.Retries; attempt++ {
		if attempt > 0 {
			f.log.Info("retrying download",
				zap.String("run", acc), zap.Int("attempt", attempt+1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(f.opts.RetryDelay):
			}
		}
		err := f.attempt(ctx, acc, rawDir, logPath)
		if err == nil {
			f.log.Info("downloaded run",
				zap.String("run", acc), zap.String("category", category))
			return nil
		}
		if err == errRestricted {
			f.log.Warn("skipping dbGaP-restricted run", zap.String("run", acc))
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("downloading %s after %d attempts: %w", acc, f.opts.Retries+1, lastErr)
}

func (f *Fetcher) attempt(ctx context.Context, acc, rawDir, logPath string) error {
	cmdCtx := ctx
	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	out, err := f.runCommand(cmdCtx, "prefetch",
		"--output-directory", rawDir, acc)
	appendLog(logPath, "prefetch", out)
	if err != nil {
		if isRestricted(out) {
			return errRestricted
		}
		return fmt.Errorf("prefetch: %w", err)
	}

	sraDir := filepath.Join(rawDir, acc)
	out, err = f.runCommand(cmdCtx, "fasterq-dump",
		"--outdir", rawDir,
		"--split-files",
		"--skip-technical",
		sraDir)
	appendLog(logPath, "fasterq-dump", out)
	if err != nil {
		return fmt.Errorf("fasterq-dump: %w", err)
	}

	// The SRA archive is only an intermediate; drop it to save space.
	if err := os.RemoveAll(sraDir); err != nil {
		return fmt.Errorf("cleaning archive dir: %w", err)
	}
	return nil
}

// isRestricted detects access-controlled runs from sra-tools output.
func isRestricted(out []byte) bool {
	s := string(out)
	return strings.Contains(s, "dbGaP") || strings.Contains(s, "Access denied")
}

// appendLog records subprocess output in the per-run log file. Logging
// failures are ignored; the download outcome is what matters.
func appendLog(path, stage string, out []byte) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "=== %s %s ===\n%s\n", time.Now().Format(time.RFC3339), stage, out)
}
