package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed response body ends up in the error.
const maxErrorBody = 512

// Loader reads the reference table from a local file or an http(s) URL.
type Loader struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLoader creates a Loader. timeout bounds remote fetches only.
func NewLoader(timeout time.Duration, logger *slog.Logger) *Loader {
	return &Loader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Load reads and parses the dataset at source.
func (l *Loader) Load(ctx context.Context, source string) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)
	if isRemote(source) {
		ds, err = l.fetch(ctx, source)
	} else {
		ds, err = l.open(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", source, err)
	}
	ds.Source = source

	l.logger.Info("dataset loaded",
		"source", source,
		"layout", ds.Layout,
		"rows", ds.Table.Len(),
		"materials", ds.Table.Materials(),
	)
	return ds, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (l *Loader) open(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (l *Loader) fetch(ctx context.Context, url string) (*Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("fetch dataset: status %d: %s", resp.StatusCode, body)
	}

	return Parse(resp.Body)
}
