package discover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, zap.NewNop())
	c.retryDelay = 0
	return c
}

func TestParseAccessions(t *testing.T) {
	body := "run_accession\nSRR100\nERR200\nDRR300\nnot-an-accession\nGSM123\n\n"
	assert.Equal(t, []string{"SRR100", "ERR200", "DRR300"}, parseAccessions(body))

	t.Run("extra columns ignored", func(t *testing.T) {
		body := "run_accession\tstudy\nSRR1\tPRJ1\n"
		assert.Equal(t, []string{"SRR1"}, parseAccessions(body))
	})

	t.Run("header only", func(t *testing.T) {
		assert.Empty(t, parseAccessions("run_accession\n"))
	})
}

func TestSearchRuns_FirstMatchingStrategyWins(t *testing.T) {
	var queries []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		queries = append(queries, q)
		if q == `study_title="*barrett*"` {
			w.Write([]byte("run_accession\nSRR1\nSRR2\n"))
			return
		}
		w.Write([]byte("run_accession\n"))
	})

	runs, err := c.SearchRuns(context.Background(), "  Barrett ", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR1", "SRR2"}, runs)
	// The first strategy matched; no further strategies were tried.
	require.Len(t, queries, 1)
}

func TestSearchRuns_FallsThroughEmptyStrategies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == `sample_title="*eac*"` {
			w.Write([]byte("run_accession\nSRR9\n"))
			return
		}
		w.Write([]byte("run_accession\n"))
	})

	runs, err := c.SearchRuns(context.Background(), "eac", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR9"}, runs)
}

func TestSearchRuns_TruncatesToMax(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("run_accession\nSRR1\nSRR2\nSRR3\n"))
	})

	runs, err := c.SearchRuns(context.Background(), "term", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR1", "SRR2"}, runs)
}

func TestSearchRuns_EmptyTerm(t *testing.T) {
	c := NewClient("http://unused", zap.NewNop())
	_, err := c.SearchRuns(context.Background(), "   ", 10)
	assert.Error(t, err)
}

func TestSearchQuery_Pages(t *testing.T) {
	// First page full at the requested limit, second page short.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		w.Write([]byte("run_accession\n"))
		if offset == 0 {
			for i := 0; i < limit; i++ {
				w.Write([]byte("SRR" + strconv.Itoa(i) + "\n"))
			}
			return
		}
		w.Write([]byte("SRR9999\n"))
	})

	runs, err := c.searchQuery(context.Background(), "q", pageSize+1)
	require.NoError(t, err)
	assert.Len(t, runs, pageSize+1)
	assert.Equal(t, "SRR9999", runs[pageSize])
}

func TestFetchPage_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("run_accession\nSRR1\n"))
	})

	runs, err := c.fetchPage(context.Background(), "q", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR1"}, runs)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchPage_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	_, err := c.fetchPage(context.Background(), "q", 10, 0)
	assert.Error(t, err)
	assert.Equal(t, int32(c.maxRetries+1), calls.Load())
}

func TestWriteRunList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.txt")
	require.NoError(t, WriteRunList(path, []string{"SRR1", "SRR2"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SRR1\nSRR2\n", string(data))

	require.NoError(t, WriteRunList(path, nil))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, string(data))
}
