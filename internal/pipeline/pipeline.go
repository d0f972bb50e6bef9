// Package pipeline orchestrates the end-to-end analysis: run discovery,
// metadata reconciliation, classification, reporting, and optional FASTQ
// retrieval. Each stage is logged under a unique run ID; stage boundaries
// exchange flat TSV files so any stage can be re-run in isolation.
// See docs/ARCHITECTURE.md § Pipeline.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-genomics/sampleatlas/internal/classify"
	"github.com/mesh-genomics/sampleatlas/internal/discover"
	"github.com/mesh-genomics/sampleatlas/internal/merge"
	"github.com/mesh-genomics/sampleatlas/internal/paths"
	"github.com/mesh-genomics/sampleatlas/internal/reference"
	"github.com/mesh-genomics/sampleatlas/internal/report"
	"github.com/mesh-genomics/sampleatlas/internal/source"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// Stage output filenames.
const (
	MergedFileName     = "comprehensive_metadata.tsv"
	ClassifiedFileName = "classified_metadata.tsv"
	SummaryFileName    = "pipeline_summary.txt"
)

// Searcher discovers candidate run accessions for a term.
type Searcher interface {
	SearchRuns(ctx context.Context, term string, max int) ([]string, error)
}

// Downloader retrieves FASTQ files for partitioned runs.
type Downloader interface {
	FetchCategories(ctx context.Context, parts map[string][]string) error
}

// Pipeline wires the engines over one output layout.
type Pipeline struct {
	cfg        types.Config
	layout     paths.Layout
	log        *zap.Logger
	searcher   Searcher
	downloader Downloader
}

// New builds a pipeline. searcher and downloader may be nil; the discovery
// and fetch stages are then skipped.
func New(cfg types.Config, layout paths.Layout, log *zap.Logger, searcher Searcher, downloader Downloader) *Pipeline {
	return &Pipeline{cfg: cfg, layout: layout, log: log, searcher: searcher, downloader: downloader}
}

// Options selects per-run pipeline inputs.
type Options struct {
	// Term is the disease phrase for run discovery; empty skips discovery.
	Term string
	// RawDir holds the staged source exports. Defaults to
	// <output>/metadata/raw.
	RawDir string
	// Workers is the classification parallelism; values below 1 run
	// single-threaded.
	Workers int
}

// Result reports where each stage wrote its output.
type Result struct {
	RunID          string         `json:"run_id"`
	MergedPath     string         `json:"merged_path"`
	ClassifiedPath string         `json:"classified_path"`
	SummaryPath    string         `json:"summary_path"`
	Summary        report.Summary `json:"summary"`
}

// Run executes the pipeline. The only fatal data condition is an empty set
// of seed-capable sources; everything else degrades with warnings.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := p.log.With(zap.String("run_id", runID))
	log.Info("pipeline starting", zap.String("output_dir", p.layout.Root))

	if err := p.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := p.layout.Provision(); err != nil {
		return nil, fmt.Errorf("provisioning output tree: %w", err)
	}

	if p.searcher != nil && opts.Term != "" {
		if err := p.discoverRuns(ctx, log, opts.Term); err != nil {
			return nil, err
		}
	}

	rawDir := opts.RawDir
	if rawDir == "" {
		rawDir = filepath.Join(p.layout.MetadataDir(), "raw")
	}

	merged, err := merge.Merge(source.LoadAll(rawDir, log), log)
	if err != nil {
		return nil, fmt.Errorf("reconciling sources: %w", err)
	}
	mergedPath := filepath.Join(p.layout.MetadataDir(), MergedFileName)
	if err := report.WriteTSV(mergedPath, merged); err != nil {
		return nil, fmt.Errorf("writing merged table: %w", err)
	}
	log.Info("merged table written",
		zap.String("path", mergedPath),
		zap.Int("rows", merged.Len()), zap.Int("columns", len(merged.Columns)))

	engine := classify.NewEngine(p.loadReference(log), log)
	cls, err := engine.ClassifyTable(ctx, merged, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("classifying samples: %w", err)
	}
	augmented, err := report.Augment(merged, cls)
	if err != nil {
		return nil, fmt.Errorf("augmenting table: %w", err)
	}
	classifiedPath := filepath.Join(p.layout.ClassificationDir(), ClassifiedFileName)
	if err := report.WriteTSV(classifiedPath, augmented); err != nil {
		return nil, fmt.Errorf("writing classified table: %w", err)
	}
	log.Info("classified table written", zap.String("path", classifiedPath))

	summary := report.Summarize(cls)
	summaryPath := filepath.Join(p.layout.Root, SummaryFileName)
	if err := p.writeSummary(summaryPath, summary, report.RunInfo{
		RunID:   runID,
		Term:    opts.Term,
		Elapsed: time.Since(start),
	}); err != nil {
		return nil, err
	}

	parts, err := report.Partition(augmented)
	if err != nil {
		return nil, fmt.Errorf("partitioning runs: %w", err)
	}
	if err := report.WritePartitionLists(p.layout.ClassificationDir(), parts); err != nil {
		return nil, fmt.Errorf("writing partition lists: %w", err)
	}

	if p.downloader != nil {
		log.Info("fetching FASTQ files by category")
		if err := p.downloader.FetchCategories(ctx, parts); err != nil {
			return nil, fmt.Errorf("fetching FASTQ files: %w", err)
		}
	}

	log.Info("pipeline finished", zap.Duration("elapsed", time.Since(start)))
	return &Result{
		RunID:          runID,
		MergedPath:     mergedPath,
		ClassifiedPath: classifiedPath,
		SummaryPath:    summaryPath,
		Summary:        summary,
	}, nil
}

// discoverRuns searches the portal and records the accession list under the
// metadata directory.
func (p *Pipeline) discoverRuns(ctx context.Context, log *zap.Logger, term string) error {
	runs, err := p.searcher.SearchRuns(ctx, term, p.cfg.MaxResults)
	if err != nil {
		return fmt.Errorf("discovering runs: %w", err)
	}
	listPath := filepath.Join(p.layout.MetadataDir(), termFileName(term)+"_run_list.txt")
	if err := discover.WriteRunList(listPath, runs); err != nil {
		return err
	}
	log.Info("run discovery complete",
		zap.String("term", term), zap.Int("runs", len(runs)), zap.String("list", listPath))
	return nil
}

// loadReference loads the configured cell-line reference; failures degrade
// the classifier instead of aborting the run.
func (p *Pipeline) loadReference(log *zap.Logger) *reference.Set {
	if p.cfg.CellLineRef == "" {
		return nil
	}
	ref, err := reference.Load(p.cfg.CellLineRef)
	if err != nil {
		log.Warn("cell line reference load failed, degrading to generic detection",
			zap.String("path", p.cfg.CellLineRef), zap.Error(err))
		return nil
	}
	return ref
}

func (p *Pipeline) writeSummary(path string, s report.Summary, info report.RunInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary file: %w", err)
	}
	defer f.Close()
	report.WriteSummaryFile(f, s, info)
	return nil
}

// termFileName makes a search phrase filesystem-safe.
func termFileName(term string) string {
	term = strings.ReplaceAll(term, " ", "_")
	return strings.ReplaceAll(term, "/", "_")
}
