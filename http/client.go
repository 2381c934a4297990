package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/shlok"
)

// DefaultClientTimeout is the default timeout for requests to a server.
const DefaultClientTimeout = 10 * time.Second

// Ensure Client implements shlok.VerseService at compile time.
var _ shlok.VerseService = (*Client)(nil)

// Client reads verses from a running shlok server.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultClientTimeout (10s) if not specified.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: DefaultClientTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// FindVerse fetches the verse at index from the server.
// Status codes map back onto application error codes.
func (c *Client) FindVerse(ctx context.Context, index int) (*shlok.Verse, error) {
	u := c.baseURL + "/api/shlok?" + url.Values{"index": {strconv.Itoa(index)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, shlok.WrapError(shlok.EUNAVAILABLE, err, "server unreachable")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, shlok.Errorf(shlok.EINVALID, "invalid index %d", index)
	case http.StatusNotFound:
		return nil, shlok.Errorf(shlok.ENOTFOUND, "verse %d not found", index)
	default:
		return nil, shlok.WrapError(shlok.EUNAVAILABLE,
			fmt.Errorf("HTTP %d for %s", resp.StatusCode, u), "server returned %d", resp.StatusCode)
	}

	var v shlok.Verse
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding verse: %w", err)
	}
	return &v, nil
}
