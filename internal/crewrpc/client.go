package crewrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/slavadubrov/crew-agents/internal/crew"
)

// Compile-time interface check.
var _ crew.Executor = (*Client)(nil)

// Client calls a remote crew service. It implements crew.Executor, so
// a flow can use a remote crew wherever a local one fits.
type Client struct {
	endpoint  string
	http      *http.Client
	requestID atomic.Int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the crew service at endpoint.
// Crew runs can take minutes, so the default timeout is generous.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Plan invokes the remote planning crew via the crew/plan method.
func (c *Client) Plan(ctx context.Context, req crew.PlanRequest) (crew.Roadmap, error) {
	var roadmap crew.Roadmap
	if err := c.call(ctx, MethodPlan, req, &roadmap); err != nil {
		return crew.Roadmap{}, err
	}
	return roadmap, nil
}

// Write invokes the remote writing crew via the crew/write method.
func (c *Client) Write(ctx context.Context, req crew.WriteRequest) (crew.Post, error) {
	var post crew.Post
	if err := c.call(ctx, MethodWrite, req, &post); err != nil {
		return crew.Post{}, err
	}
	return post, nil
}

// GetRun retrieves a recorded run by ID via the runs/get method.
func (c *Client) GetRun(ctx context.Context, id string) (Run, error) {
	var run Run
	if err := c.call(ctx, MethodGetRun, GetRunRequest{ID: id}, &run); err != nil {
		return Run{}, err
	}
	return run, nil
}

// ListRuns queries recorded runs via the runs/list method.
func (c *Client) ListRuns(ctx context.Context, state RunState) ([]Run, error) {
	var resp ListRunsResponse
	if err := c.call(ctx, MethodListRuns, ListRunsRequest{State: state}, &resp); err != nil {
		return nil, err
	}
	return resp.Runs, nil
}

// Discover fetches the crew card from the well-known URI.
func (c *Client) Discover(ctx context.Context) (Card, error) {
	url := c.endpoint + CardPath

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Card{}, fmt.Errorf("crewrpc: create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Card{}, fmt.Errorf("crewrpc: discover crew: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Card{}, fmt.Errorf("crewrpc: discover crew: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var card Card
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return Card{}, fmt.Errorf("crewrpc: decode crew card: %w", err)
	}
	return card, nil
}

// nextID returns a monotonically increasing request ID for JSON-RPC calls.
func (c *Client) nextID() int64 {
	return c.requestID.Add(1)
}

// call performs a JSON-RPC 2.0 call over HTTP POST.
func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("crewrpc: marshal params: %w", err)
	}

	rpcReq := Request{
		JSONRPC: Version,
		ID:      c.nextID(),
		Method:  method,
		Params:  paramsJSON,
	}

	body, err := json.Marshal(rpcReq)
	if err != nil {
		return fmt.Errorf("crewrpc: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("crewrpc: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("crewrpc: %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("crewrpc: read response: %w", err)
	}

	var rpcResp Response
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("crewrpc: decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return fmt.Errorf("crewrpc: %s: %w", method, rpcResp.Error)
	}

	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("crewrpc: decode result: %w", err)
		}
	}
	return nil
}
