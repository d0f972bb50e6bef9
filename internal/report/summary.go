// Distribution summaries over classification results.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// Summary aggregates the classification distributions reported after a
// classify run.
type Summary struct {
	Total          int            `json:"total"`
	Labels         map[string]int `json:"labels"`
	Grades         map[string]int `json:"barrett_grades"`
	Tissues        map[string]int `json:"tissue_origins"`
	CellLine       int            `json:"cell_line_samples"`
	BulkSorted     int            `json:"bulk_sorted_samples"`
	Control        int            `json:"control_samples"`
	AdjacentNormal int            `json:"adjacent_normal_samples"`
}

// Summarize tallies label, grade, tissue, and flag distributions. Labels
// count under their category directory name so both cell-line spellings
// land in one bucket.
func Summarize(cls []types.Classification) Summary {
	s := Summary{
		Total:   len(cls),
		Labels:  make(map[string]int),
		Grades:  make(map[string]int),
		Tissues: make(map[string]int),
	}
	for _, c := range cls {
		s.Labels[types.CategoryDir(string(c.TopLabel))]++
		s.Grades[string(c.BarrettGrade)]++
		s.Tissues[c.TissueOrigin]++
		if c.IsCellLine {
			s.CellLine++
		}
		if c.IsBulkSorted {
			s.BulkSorted++
		}
		if c.IsControl {
			s.Control++
		}
		if c.AdjacentNormal {
			s.AdjacentNormal++
		}
	}
	return s
}

// Print writes the human-readable distribution report.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Total samples: %d\n\n", s.Total)

	fmt.Fprintln(w, "Top label distribution:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cat := range types.Categories {
		n := s.Labels[cat]
		if n == 0 {
			continue
		}
		fmt.Fprintf(tw, "  %s\t%d\t(%.1f%%)\n", cat, n, percent(n, s.Total))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nCell line samples: %d\n", s.CellLine)
	fmt.Fprintf(w, "Bulk sorted samples: %d\n", s.BulkSorted)
	fmt.Fprintf(w, "Control samples: %d\n", s.Control)
	fmt.Fprintf(w, "Adjacent normal samples: %d\n", s.AdjacentNormal)

	fmt.Fprintln(w, "\nBarrett grade distribution:")
	printCounts(w, s.Grades)

	fmt.Fprintln(w, "\nTissue origin distribution:")
	printCounts(w, s.Tissues)
}

// RunInfo stamps a pipeline summary file with run provenance.
type RunInfo struct {
	RunID   string
	Term    string
	Elapsed time.Duration
}

// WriteSummaryFile writes the pipeline summary report.
func WriteSummaryFile(w io.Writer, s Summary, info RunInfo) {
	fmt.Fprintln(w, "Sample Classification Summary")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run ID: %s\n", info.RunID)
	if info.Term != "" {
		fmt.Fprintf(w, "Search term: %s\n", info.Term)
	}
	fmt.Fprintf(w, "Elapsed: %s\n\n", info.Elapsed.Round(time.Millisecond))
	s.Print(w)
}

// printCounts writes counts sorted by descending count, then name, so the
// report is reproducible.
func printCounts(w io.Writer, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%d\n", name, counts[name])
	}
	tw.Flush()
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
