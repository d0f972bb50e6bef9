// Package discover finds candidate run accessions for a disease phrase via
// the ENA portal search API. This is boundary glue around the core: query
// construction, paging, rate limiting, and bounded retries live here and
// nowhere else.
package discover

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// userAgent identifies the collector to the portal.
const userAgent = "sampleatlas-metadata-collector/1.0"

// pageSize is the per-request row limit; the portal caps large requests.
const pageSize = 500

// runAccessionPattern accepts INSDC run accessions from any of the three
// archives.
var runAccessionPattern = regexp.MustCompile(`^[SED]RR[0-9]+$`)

// Client searches the ENA portal API for read runs.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger

	maxRetries int
	retryDelay time.Duration
}

// NewClient builds a portal client against baseURL (the /ena/portal/api/search
// endpoint).
func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
		maxRetries: 3,
		retryDelay: 2 * time.Second,
	}
}

// searchStrategies builds the query variants for a term, tried in order
// until one returns runs. Title fields are the most precise, descriptions
// the broadest.
func searchStrategies(term string) []string {
	return []string{
		fmt.Sprintf(`study_title="*%s*"`, term),
		fmt.Sprintf(`sample_title="*%s*"`, term),
		fmt.Sprintf(`experiment_title="*%s*"`, term),
		fmt.Sprintf(`study_description="*%s*"`, term),
	}
}

// SearchRuns returns up to max distinct run accessions whose metadata
// mentions term, in discovery order. Strategies are tried in order; the
// first strategy yielding any runs wins for that term.
func (c *Client) SearchRuns(ctx context.Context, term string, max int) ([]string, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, fmt.Errorf("search term must not be empty")
	}

	var runs []string
	seen := make(map[string]bool)
	for _, query := range searchStrategies(term) {
		found, err := c.searchQuery(ctx, query, max)
		if err != nil {
			c.log.Warn("search strategy failed, trying next",
				zap.String("query", query), zap.Error(err))
			continue
		}
		for _, acc := range found {
			if !seen[acc] {
				seen[acc] = true
				runs = append(runs, acc)
			}
		}
		if len(found) > 0 {
			c.log.Info("search strategy matched",
				zap.String("query", query), zap.Int("runs", len(found)))
			break
		}
	}
	if len(runs) > max {
		runs = runs[:max]
	}
	return runs, nil
}

// searchQuery pages through one portal query until max accessions are
// collected or a short page signals the end.
func (c *Client) searchQuery(ctx context.Context, query string, max int) ([]string, error) {
	var runs []string
	for offset := 0; len(runs) < max; offset += pageSize {
		limit := pageSize
		if remaining := max - len(runs); remaining < limit {
			limit = remaining
		}
		page, err := c.fetchPage(ctx, query, limit, offset)
		if err != nil {
			return nil, err
		}
		runs = append(runs, page...)
		if len(page) < limit {
			break
		}
	}
	return runs, nil
}

// fetchPage performs one portal request with bounded retries.
func (c *Client) fetchPage(ctx context.Context, query string, limit, offset int) ([]string, error) {
	params := url.Values{
		"result": {"read_run"},
		"fields": {"run_accession"},
		"format": {"tsv"},
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	reqURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
		body, err := c.get(ctx, reqURL)
		if err != nil {
			lastErr = err
			continue
		}
		return parseAccessions(body), nil
	}
	return nil, fmt.Errorf("fetching page after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) get(ctx context.Context, reqURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("portal request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("portal returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(body), nil
}

// parseAccessions extracts run accessions from a one-column TSV response,
// skipping the header and anything not accession-shaped.
func parseAccessions(body string) []string {
	var runs []string
	for i, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if i == 0 {
			continue
		}
		acc := strings.TrimSpace(strings.SplitN(line, "\t", 2)[0])
		if runAccessionPattern.MatchString(acc) {
			runs = append(runs, acc)
		}
	}
	return runs
}

// WriteRunList writes discovered accessions one per line.
func WriteRunList(path string, runs []string) error {
	content := strings.Join(runs, "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing run list %s: %w", path, err)
	}
	return nil
}
