package lookupcli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	repository "github.com/okian/wcarank/internal/adapters/repository"
	service "github.com/okian/wcarank/internal/app"
	"github.com/okian/wcarank/internal/domain/format"
	"github.com/okian/wcarank/internal/domain/query"
	"github.com/okian/wcarank/internal/domain/types"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// remoteClient answers lookups by calling a running server.
type remoteClient struct {
	baseURL string
	client  *http.Client
}

func newRemoteClient(baseURL string, timeout time.Duration) *remoteClient {
	return &remoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Lookup calls GET /rank.
func (c *remoteClient) Lookup(ctx context.Context, eventID, region, rankInput string) (types.Profile, error) {
	var p types.Profile
	q := url.Values{"event": {eventID}, "region": {region}, "rank": {rankInput}}
	if err := c.get(ctx, "/rank", q, &p); err != nil {
		return types.Profile{}, err
	}
	return p, nil
}

// Events calls GET /events.
func (c *remoteClient) Events(ctx context.Context) ([]types.EventOption, error) {
	var events []types.EventOption
	if err := c.get(ctx, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *remoteClient) get(ctx context.Context, path string, q url.Values, v any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decodeErrorResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeErrorResponse maps the server's error codes back to the sentinels
// a local lookup would return.
func decodeErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	switch e.Code {
	case "invalid_rank":
		return fmt.Errorf("%w: %s", query.ErrInvalidRankInput, e.Message)
	case "not_found":
		return repository.ErrNotFound
	case "decode_error":
		return fmt.Errorf("%w: %s", format.ErrDecode, e.Message)
	case "not_ready":
		return service.ErrNotStarted
	default:
		return fmt.Errorf("server returned %d %s: %s", resp.StatusCode, e.Code, e.Message)
	}
}
