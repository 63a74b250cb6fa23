package crewrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/slavadubrov/crew-agents/internal/crew"
)

// Service exposes one crew executor over HTTP/JSON-RPC 2.0. Every plan
// and write call is recorded in a run store so callers can inspect
// past invocations via the runs/* methods.
type Service struct {
	card   Card
	exec   crew.Executor
	store  *RunStore
	http   *http.Server
	logger *log.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger replaces the service logger.
func WithServiceLogger(l *log.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService wraps exec in a JSON-RPC service described by card.
func NewService(card Card, exec crew.Executor, opts ...ServiceOption) (*Service, error) {
	if exec == nil {
		return nil, fmt.Errorf("crewrpc: executor is nil")
	}
	if card.Name == "" {
		return nil, fmt.Errorf("crewrpc: card name is empty")
	}
	s := &Service{
		card:   card,
		exec:   exec,
		store:  NewRunStore(),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Card returns the manifest the service publishes.
func (s *Service) Card() Card {
	return s.card
}

// Handler returns the HTTP handler for the service routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+CardPath, s.handleCard)
	mux.HandleFunc("POST /", s.handleJSONRPC)
	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down
// gracefully. It blocks for the lifetime of the server.
func (s *Service) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()
	s.logger.Printf("crewrpc: %s serving on %s", s.card.Name, addr)

	select {
	case <-ctx.Done():
		if err := s.http.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("crewrpc: shutdown %s: %w", s.card.Name, err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("crewrpc: serve %s: %w", s.card.Name, err)
		}
		return nil
	}
}

// handleCard serves the crew card at the well-known endpoint.
func (s *Service) handleCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(s.card); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleJSONRPC decodes the envelope and dispatches to the method
// handler.
func (s *Service) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRPCError(w, nil, ErrCodeParse, "Parse error: "+err.Error())
		return
	}

	ctx := r.Context()

	switch req.Method {
	case MethodPlan:
		s.dispatchPlan(ctx, w, &req)
	case MethodWrite:
		s.dispatchWrite(ctx, w, &req)
	case MethodGetRun:
		s.dispatchGetRun(w, &req)
	case MethodListRuns:
		s.dispatchListRuns(w, &req)
	default:
		writeRPCError(w, req.ID, ErrCodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

// dispatchPlan runs the executor's planning crew and records the run.
func (s *Service) dispatchPlan(ctx context.Context, w http.ResponseWriter, req *Request) {
	var params crew.PlanRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		writeRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
		return
	}

	runID := s.store.Begin(MethodPlan)
	roadmap, err := s.exec.Plan(ctx, params)
	s.store.Finish(runID, err)
	if err != nil {
		s.logger.Printf("crewrpc: %s failed: %v", MethodPlan, err)
		writeRPCError(w, req.ID, ErrCodeInternal, err.Error())
		return
	}

	writeRPCResult(w, req.ID, roadmap)
}

// dispatchWrite runs the executor's writing crew and records the run.
func (s *Service) dispatchWrite(ctx context.Context, w http.ResponseWriter, req *Request) {
	var params crew.WriteRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		writeRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
		return
	}

	runID := s.store.Begin(MethodWrite)
	post, err := s.exec.Write(ctx, params)
	s.store.Finish(runID, err)
	if err != nil {
		s.logger.Printf("crewrpc: %s failed: %v", MethodWrite, err)
		writeRPCError(w, req.ID, ErrCodeInternal, err.Error())
		return
	}

	writeRPCResult(w, req.ID, post)
}

// GetRunRequest identifies a recorded run.
type GetRunRequest struct {
	ID string `json:"id"`
}

// ListRunsRequest filters the recorded runs.
type ListRunsRequest struct {
	State RunState `json:"state,omitempty"`
}

// ListRunsResponse carries the matching runs.
type ListRunsResponse struct {
	Runs []Run `json:"runs"`
}

func (s *Service) dispatchGetRun(w http.ResponseWriter, req *Request) {
	var params GetRunRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		writeRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
		return
	}

	run, ok := s.store.Get(params.ID)
	if !ok {
		writeRPCError(w, req.ID, ErrCodeRunNotFound, fmt.Sprintf("Run not found: %s", params.ID))
		return
	}

	writeRPCResult(w, req.ID, run)
}

func (s *Service) dispatchListRuns(w http.ResponseWriter, req *Request) {
	var params ListRunsRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			writeRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
			return
		}
	}

	writeRPCResult(w, req.ID, ListRunsResponse{Runs: s.store.List(params.State)})
}

// writeRPCResult writes a successful JSON-RPC response.
func writeRPCResult(w http.ResponseWriter, id any, result any) {
	data, err := json.Marshal(result)
	if err != nil {
		writeRPCError(w, id, ErrCodeInternal, "Failed to marshal result: "+err.Error())
		return
	}

	resp := Response{
		JSONRPC: Version,
		ID:      id,
		Result:  data,
	}

	json.NewEncoder(w).Encode(resp)
}

// writeRPCError writes a JSON-RPC error response.
func writeRPCError(w http.ResponseWriter, id any, code int, message string) {
	resp := Response{
		JSONRPC: Version,
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}

	json.NewEncoder(w).Encode(resp)
}
