// Package reference loads the cell-line name reference set and answers
// whole-word containment queries against sample text. The set is built once
// per run and read-only afterwards, so concurrent classification workers
// share it without locking.
// See docs/ARCHITECTURE.md § Cell-Line Reference.
package reference

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/mesh-genomics/sampleatlas/internal/table"
	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

// minNameLen excludes short reference entries at load time; two-letter codes
// match far too many incidental tokens. The filter lives in the loaders, not
// the matcher, so the word-boundary semantics stay testable on their own.
const minNameLen = 3

// CSV reference columns. Both the vendor name and its stripped form are
// indexed when present.
const (
	colCellLineName = "CellLineName"
	colStrippedName = "StrippedCellLineName"
)

// Set is a normalized cell-line name set. The zero value is empty and
// usable; an empty set matches nothing.
type Set struct {
	// simple holds names with no separator characters, matched by token
	// equality.
	simple map[string]bool
	// compound holds names containing separators (spaces, hyphens inside
	// multi-part names), matched by boundary-anchored containment, kept
	// sorted so match order never depends on map iteration.
	compound []string
	size     int
}

// NewSet builds a Set from raw candidate names, normalizing each entry.
// Length filtering is the loaders' concern; NewSet indexes whatever it is
// given.
func NewSet(names []string) *Set {
	s := &Set{simple: make(map[string]bool)}
	for _, n := range names {
		s.add(n)
	}
	sort.Strings(s.compound)
	return s
}

func (s *Set) add(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	if isSimpleToken(name) {
		if !s.simple[name] {
			s.simple[name] = true
			s.size++
		}
		return
	}
	for _, existing := range s.compound {
		if existing == name {
			return
		}
	}
	s.compound = append(s.compound, name)
	s.size++
}

// Len returns the number of distinct normalized names.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Empty reports whether the set holds no names. The classifier treats an
// empty set like an absent one and degrades to generic keywords.
func (s *Set) Empty() bool { return s.Len() == 0 }

// Match returns the first reference name appearing in text as a whole word,
// and whether any matched. Text is expected lowercase (the normalizer
// guarantees it). Single-token names are checked in text token order;
// compound names follow in sorted order, so the result is reproducible for
// a fixed text and set.
func (s *Set) Match(text string) (string, bool) {
	if s.Empty() || text == "" {
		return "", false
	}
	for _, tok := range splitTokens(text) {
		if s.simple[tok] {
			return tok, true
		}
	}
	for _, name := range s.compound {
		if containsWord(text, name) {
			return name, true
		}
	}
	return "", false
}

// Load reads a reference database by file type: SQLite for .db/.sqlite
// extensions, CSV otherwise. Failures return types.ErrReferenceUnavailable
// wrapped with the cause; callers degrade, they do not abort.
func Load(path string) (*Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return LoadCSV(path)
	}
}

// LoadCSV reads cell-line names from a reference CSV carrying CellLineName
// and StrippedCellLineName columns. Names shorter than three characters are
// excluded here, at load time.
func LoadCSV(path string) (*Set, error) {
	t, err := table.ReadFile(path, table.ReadOptions{Comma: ','})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrReferenceUnavailable, err)
	}
	var names []string
	for _, row := range t.Rows {
		if v := row.Get(colCellLineName); v != "" {
			names = append(names, v)
		}
		if v := row.Get(colStrippedName); v != "" {
			names = append(names, v)
		}
	}
	set := NewSet(filterShort(names))
	if set.Empty() {
		return nil, fmt.Errorf("%w: %s", types.ErrReferenceEmpty, path)
	}
	return set, nil
}

// filterShort drops candidate names below the load-time length floor.
func filterShort(names []string) []string {
	kept := names[:0]
	for _, n := range names {
		if len(strings.TrimSpace(n)) >= minNameLen {
			kept = append(kept, n)
		}
	}
	return kept
}

// isSimpleToken reports whether the name is one bare token under the word
// boundary rules (letters, digits, underscore only).
func isSimpleToken(name string) bool {
	for _, r := range name {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

// isWordRune matches the character class that does NOT break a word.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// splitTokens splits text into word tokens on non-word runes.
func splitTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) })
}

// containsWord reports whether needle occurs in text delimited by word
// boundaries on both sides. The needle itself may contain separators.
func containsWord(text, needle string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(needle)
		leftOK := i == 0 || !isWordRune(rune(text[i-1]))
		rightOK := end == len(text) || !isWordRune(rune(text[end]))
		if leftOK && rightOK {
			return true
		}
		start = i + 1
	}
}
