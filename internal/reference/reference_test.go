package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

func TestNewSet(t *testing.T) {
	t.Run("normalizes and deduplicates", func(t *testing.T) {
		s := NewSet([]string{" OE33 ", "oe33", "KYSE-150", "kyse-150"})
		assert.Equal(t, 2, s.Len())
	})

	t.Run("nil and zero are empty", func(t *testing.T) {
		assert.True(t, NewSet(nil).Empty())
		var s *Set
		assert.True(t, s.Empty())
		assert.Zero(t, s.Len())
	})
}

func TestMatch_WordBoundaries(t *testing.T) {
	s := NewSet([]string{"OE33", "HCT 116", "KYSE-150"})

	tests := []struct {
		text  string
		want  string
		match bool
	}{
		{"rna-seq of oe33 cells", "oe33", true},
		{"oe33", "oe33", true},
		{"(oe33)", "oe33", true},
		// Token containment is not enough; boundaries are required.
		{"proe33x sample", "", false},
		{"oe333 sample", "", false},
		// Compound names match boundary anchored.
		{"derived from hct 116 line", "hct 116", true},
		{"xhct 116 line", "", false},
		{"kyse-150 xenograft", "kyse-150", true},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := s.Match(tt.text)
		assert.Equal(t, tt.match, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestMatch_StandaloneTokenOnly(t *testing.T) {
	// A short entry must never hit inside a larger token, only standalone.
	s := NewSet([]string{"ls"})

	_, ok := s.Match("cells are cultured")
	assert.False(t, ok)

	got, ok := s.Match("cell line ls used")
	assert.True(t, ok)
	assert.Equal(t, "ls", got)
}

func TestMatch_Deterministic(t *testing.T) {
	s := NewSet([]string{"kyse-150", "hct 116", "sw 480"})
	text := "comparing hct 116 and sw 480 and kyse-150"

	first, ok := s.Match(text)
	require.True(t, ok)
	for i := 0; i < 20; i++ {
		got, ok := s.Match(text)
		require.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestLoadCSV(t *testing.T) {
	t.Run("loads both name columns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ref.csv")
		content := "CellLineName,StrippedCellLineName\nOE-33,OE33\nKYSE-150,KYSE150\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		s, err := LoadCSV(path)
		require.NoError(t, err)
		assert.Equal(t, 4, s.Len())

		_, ok := s.Match("sample of oe33 line")
		assert.True(t, ok)
		_, ok = s.Match("sample of oe-33 line")
		assert.True(t, ok)
	})

	t.Run("drops names below the length floor at load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ref.csv")
		content := "CellLineName,StrippedCellLineName\nLS,OE33\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		s, err := LoadCSV(path)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
		_, ok := s.Match("the ls sample")
		assert.False(t, ok)
	})

	t.Run("missing file wraps ErrReferenceUnavailable", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
		assert.ErrorIs(t, err, types.ErrReferenceUnavailable)
	})

	t.Run("no usable names wraps ErrReferenceEmpty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ref.csv")
		require.NoError(t, os.WriteFile(path, []byte("CellLineName,StrippedCellLineName\n,\n"), 0o644))
		_, err := LoadCSV(path)
		assert.ErrorIs(t, err, types.ErrReferenceEmpty)
	})
}

func TestLoad_DispatchesByExtension(t *testing.T) {
	// A CSV-shaped file under a .csv name goes through the CSV loader.
	path := filepath.Join(t.TempDir(), "ref.csv")
	require.NoError(t, os.WriteFile(path, []byte("CellLineName\nOE33\n"), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	// An absent SQLite path fails through the SQLite loader.
	_, err = Load(filepath.Join(t.TempDir(), "absent.db"))
	assert.ErrorIs(t, err, types.ErrReferenceUnavailable)
}
