// Package source loads the WCA results and ranks exports from local files or
// remote URLs.
package source

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	gzipSuffix         = ".gz"
)

// Source opens one raw dataset.
type Source interface {
	// Open returns a reader over the dataset. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Location describes where the dataset comes from, for logs and errors.
	Location() string
}

// NewSource returns an HTTPSource for http(s) locations and a FileSource
// for anything else.
func NewSource(location string, timeout time.Duration) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		return NewHTTPSource(location, &http.Client{Timeout: timeout})
	}
	return NewFileSource(location)
}

// HTTPSource fetches a dataset with a GET request.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource. A nil client uses a client with the
// default timeout.
func NewHTTPSource(rawURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPSource{url: rawURL, client: client}
}

// Location implements Source.
func (s *HTTPSource) Location() string { return s.url }

// Open implements Source. Responses outside 2xx are errors.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if isGzip(urlPath(s.url)) {
		return gunzip(resp.Body)
	}
	return resp.Body, nil
}

// FileSource reads a dataset from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Location implements Source.
func (s *FileSource) Location() string { return s.path }

// Open implements Source.
func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if isGzip(s.path) {
		return gunzip(f)
	}
	return f, nil
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Path
}

func isGzip(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), gzipSuffix)
}

// gzipReadCloser closes both the decompressor and the underlying stream.
type gzipReadCloser struct {
	*gzip.Reader
	underlying io.Closer
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.Reader.Close()
	if err := g.underlying.Close(); err != nil {
		return err
	}
	return gzErr
}

func gunzip(rc io.ReadCloser) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(rc)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return &gzipReadCloser{Reader: zr, underlying: rc}, nil
}
