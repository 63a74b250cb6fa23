package crewrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slavadubrov/crew-agents/internal/crew"
)

// echoExecutor returns canned results and records the requests it saw.
type echoExecutor struct {
	roadmap  crew.Roadmap
	planErr  error
	writeErr error

	planReqs  []crew.PlanRequest
	writeReqs []crew.WriteRequest
}

func (e *echoExecutor) Plan(ctx context.Context, req crew.PlanRequest) (crew.Roadmap, error) {
	e.planReqs = append(e.planReqs, req)
	if e.planErr != nil {
		return crew.Roadmap{}, e.planErr
	}
	return e.roadmap, nil
}

func (e *echoExecutor) Write(ctx context.Context, req crew.WriteRequest) (crew.Post, error) {
	e.writeReqs = append(e.writeReqs, req)
	if e.writeErr != nil {
		return crew.Post{}, e.writeErr
	}
	return crew.Post{
		Title:   req.PostTitle,
		Content: fmt.Sprintf("# %s\n\nBody of post %d.", req.PostTitle, req.PostIndexPlusOne),
	}, nil
}

func testCard() Card {
	return Card{
		Name:         "blog-crew",
		Description:  "Plans and writes blog series",
		Version:      "1.0.0",
		Capabilities: []string{MethodPlan, MethodWrite},
	}
}

func newTestService(t *testing.T, exec crew.Executor) (*Service, *Client) {
	t.Helper()
	svc, err := NewService(testCard(), exec)
	require.NoError(t, err)

	ts := httptest.NewServer(svc.Handler())
	t.Cleanup(ts.Close)

	return svc, NewClient(ts.URL)
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(testCard(), nil)
	require.Error(t, err)

	_, err = NewService(Card{}, &echoExecutor{})
	require.Error(t, err)
}

func TestClientDiscover(t *testing.T) {
	_, client := newTestService(t, &echoExecutor{})

	card, err := client.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "blog-crew", card.Name)
	assert.Contains(t, card.Capabilities, MethodPlan)
}

func TestPlanRoundTrip(t *testing.T) {
	exec := &echoExecutor{
		roadmap: crew.Roadmap{Posts: []crew.Outline{
			{Title: "LRU Cache", Description: "Eviction basics."},
			{Title: "Write-Through Cache", Description: "Consistency tradeoffs."},
		}},
	}
	_, client := newTestService(t, exec)

	roadmap, err := client.Plan(context.Background(), crew.PlanRequest{
		Topic: "Caching strategies",
		Goal:  "Teach caching to backend engineers",
	})
	require.NoError(t, err)
	require.Len(t, roadmap.Posts, 2)
	assert.Equal(t, "LRU Cache", roadmap.Posts[0].Title)

	require.Len(t, exec.planReqs, 1)
	assert.Equal(t, "Caching strategies", exec.planReqs[0].Topic)
	assert.Equal(t, "Teach caching to backend engineers", exec.planReqs[0].Goal)
}

func TestWriteRoundTrip(t *testing.T) {
	exec := &echoExecutor{}
	_, client := newTestService(t, exec)

	req := crew.WriteRequest{
		Topic:            "Caching strategies",
		Goal:             "Teach caching",
		PostTitle:        "LRU Cache",
		PostDescription:  "Eviction basics.",
		Roadmap:          []crew.Outline{{Title: "LRU Cache"}, {Title: "Write-Through Cache"}},
		PostIndex:        0,
		PostIndexPlusOne: 1,
		TotalPosts:       2,
	}
	post, err := client.Write(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "LRU Cache", post.Title)
	assert.Contains(t, post.Content, "Body of post 1")

	require.Len(t, exec.writeReqs, 1)
	assert.Equal(t, req, exec.writeReqs[0])
}

func TestExecutorErrorSurfacesAsRPCError(t *testing.T) {
	exec := &echoExecutor{planErr: errors.New("planning crew unavailable")}
	_, client := newTestService(t, exec)

	_, err := client.Plan(context.Background(), crew.PlanRequest{Topic: "x", Goal: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planning crew unavailable")

	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, ErrCodeInternal, rpcErr.Code)
}

func TestRunsAreRecorded(t *testing.T) {
	exec := &echoExecutor{
		roadmap:  crew.Roadmap{Posts: []crew.Outline{{Title: "Only"}}},
		writeErr: errors.New("writer gave up"),
	}
	_, client := newTestService(t, exec)
	ctx := context.Background()

	_, err := client.Plan(ctx, crew.PlanRequest{Topic: "t", Goal: "g"})
	require.NoError(t, err)
	_, err = client.Write(ctx, crew.WriteRequest{PostTitle: "Only"})
	require.Error(t, err)

	runs, err := client.ListRuns(ctx, "")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, MethodPlan, runs[0].Method)
	assert.Equal(t, RunCompleted, runs[0].State)
	assert.Equal(t, MethodWrite, runs[1].Method)
	assert.Equal(t, RunFailed, runs[1].State)
	assert.Equal(t, "writer gave up", runs[1].Error)

	failed, err := client.ListRuns(ctx, RunFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)

	run, err := client.GetRun(ctx, runs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, runs[0].ID, run.ID)
}

func TestGetRunUnknownID(t *testing.T) {
	_, client := newTestService(t, &echoExecutor{})

	_, err := client.GetRun(context.Background(), "missing")
	require.Error(t, err)

	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, ErrCodeRunNotFound, rpcErr.Code)
}

func TestMethodNotFound(t *testing.T) {
	svc, err := NewService(testCard(), &echoExecutor{})
	require.NoError(t, err)

	ts := httptest.NewServer(svc.Handler())
	defer ts.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"crew/unknown"}`
	resp, err := http.Post(ts.URL, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, ErrCodeMethodNotFound, rpcResp.Error.Code)
}

func TestParseError(t *testing.T) {
	svc, err := NewService(testCard(), &echoExecutor{})
	require.NoError(t, err)

	ts := httptest.NewServer(svc.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL, "application/json", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, ErrCodeParse, rpcResp.Error.Code)
}

func TestRegistryRequiresServices(t *testing.T) {
	err := NewRegistry().Run(context.Background(), "127.0.0.1", 0)
	require.Error(t, err)
}
