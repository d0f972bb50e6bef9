// Delimited read/write for wide tables with atomic persistence.
// See docs/ARCHITECTURE.md § Interchange Format.
package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// ReadOptions controls delimited parsing.
type ReadOptions struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune
	// DropRepeatedHeader skips body records identical to the header row.
	// ENA filereport responses fetched in pages repeat the header line
	// between pages.
	DropRepeatedHeader bool
}

// ReadFile parses a delimited file into a table. The first record is the
// header; ragged records are tolerated, with short records padded by absent
// columns and excess fields dropped.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Read parses delimited data from r into a table.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = ','
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, types.ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	t := New(header...)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		if opts.DropRepeatedHeader && sameRecord(rec, header) {
			continue
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			// Duplicate header names collapse to the first occurrence.
			if _, dup := row[col]; !dup {
				row[col] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteFile atomically writes the table as delimited text using the
// temp-file, flush, rename pattern. One header row, then one record per row
// in table order.
func WriteFile(path string, t *Table, comma rune) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".table-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := Write(w, t, comma); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Write serializes the table as delimited text to w.
func Write(w io.Writer, t *Table, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = ','
	if comma != 0 {
		cw.Comma = comma
	}

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func sameRecord(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
