package crewrpc

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// RunState is the lifecycle state of a recorded crew run.
type RunState string

const (
	RunWorking   RunState = "working"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// Run is one recorded invocation of a crew method.
type Run struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	State      RunState  `json:"state"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	Error      string    `json:"error,omitempty"`
}

// RunStore keeps run records in memory. Safe for concurrent use.
type RunStore struct {
	mu    sync.Mutex
	runs  map[string]*Run
	order []string
}

func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string]*Run)}
}

// Begin records a new working run for method and returns its ID.
func (s *RunStore) Begin(method string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.runs[id] = &Run{
		ID:        id,
		Method:    method,
		State:     RunWorking,
		StartedAt: time.Now().UTC(),
	}
	s.order = append(s.order, id)
	return id
}

// Finish marks the run completed, or failed when err is non-nil.
func (s *RunStore) Finish(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return
	}
	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.State = RunFailed
		run.Error = err.Error()
	} else {
		run.State = RunCompleted
	}
}

// Get returns a copy of the run, or false when the ID is unknown.
func (s *RunStore) Get(id string) (Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return Run{}, false
	}
	return *run, true
}

// List returns copies of all runs in creation order. When state is
// non-empty only runs in that state are returned.
func (s *RunStore) List(state RunState) []Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Run, 0, len(s.order))
	for _, id := range s.order {
		run := s.runs[id]
		if state != "" && run.State != state {
			continue
		}
		out = append(out, *run)
	}
	return out
}
