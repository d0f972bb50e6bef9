// Run command: full end-to-end pipeline for one disease term.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-genomics/sampleatlas/internal/discover"
	"github.com/mesh-genomics/sampleatlas/internal/fetch"
	"github.com/mesh-genomics/sampleatlas/internal/paths"
	"github.com/mesh-genomics/sampleatlas/internal/pipeline"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

var (
	runTerm           string
	runRawDir         string
	runOutDir         string
	runSkipDiscover   bool
	runSkipFetch      bool
	runWorkers        int
	runMaxPerCategory int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: discover, merge, classify, partition, fetch",
	Long: `Run executes the whole pipeline for one disease term. Runs are
discovered through the ENA portal, the staged registry exports are
merged into one wide table, every sample is classified, runs are
partitioned by category, and FASTQ files are downloaded per category.

Output lands under <output-dir>/<term>/ so repeated terms do not
collide. Discovery and fetch can each be skipped to re-process staged
exports offline.

Example:
  sampleatlas run -c "esophageal adenocarcinoma" -o results/
  sampleatlas run -c barretts --skip-fetch --raw-dir exports/`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVarP(&runTerm, "term", "c", "", "disease term to process (required)")
	runCmd.Flags().StringVar(&runRawDir, "raw-dir", "", "directory with staged registry exports (default: <output>/metadata/raw)")
	runCmd.Flags().StringVarP(&runOutDir, "output", "o", "", "output root (default: config output_dir)")
	runCmd.Flags().BoolVar(&runSkipDiscover, "skip-discover", false, "skip ENA run discovery")
	runCmd.Flags().BoolVar(&runSkipFetch, "skip-fetch", false, "skip FASTQ downloads")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "parallel workers for classification and fetch (default: config fetch_workers)")
	runCmd.Flags().IntVar(&runMaxPerCategory, "max-per-category", 0, "cap downloads per category (0 = unlimited)")
	runCmd.MarkFlagRequired("term")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	outRoot, err := paths.ResolveOutputDir(runOutDir, cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}
	layout := paths.Layout{Root: filepath.Join(outRoot, termDirName(runTerm))}

	workers := cfg.FetchWorkers
	if runWorkers > 0 {
		workers = runWorkers
	}

	var searcher pipeline.Searcher
	if !runSkipDiscover {
		searcher = discover.NewClient(cfg.ENABaseURL, log)
	}
	var downloader pipeline.Downloader
	if !runSkipFetch {
		opts := fetch.DefaultOptions()
		opts.Workers = workers
		opts.MaxPerCategory = runMaxPerCategory
		downloader = fetch.New(layout, opts, log)
	}

	p := pipeline.New(cfg, layout, log, searcher, downloader)
	res, err := p.Run(cmd.Context(), pipeline.Options{
		Term:    runTerm,
		RawDir:  runRawDir,
		Workers: workers,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(res)
	}
	fmt.Printf("Run %s complete\n", res.RunID)
	fmt.Printf("  merged:     %s\n", res.MergedPath)
	fmt.Printf("  classified: %s\n", res.ClassifiedPath)
	fmt.Printf("  summary:    %s\n", res.SummaryPath)
	for _, cat := range types.Categories {
		if n := res.Summary.Labels[cat]; n > 0 {
			fmt.Printf("  %s: %d sample(s)\n", cat, n)
		}
	}
	return nil
}

// termDirName makes a disease term safe as a directory name.
func termDirName(term string) string {
	term = strings.TrimSpace(strings.ToLower(term))
	term = strings.ReplaceAll(term, " ", "_")
	return strings.ReplaceAll(term, "/", "_")
}
