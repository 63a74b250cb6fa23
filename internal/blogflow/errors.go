package blogflow

import "fmt"

// ConfigError reports an invalid invocation. It is returned before any side
// effect is performed.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "blogflow: " + e.Reason
}

// PlanningError reports that the planning capability failed or returned an
// unusable roadmap. No posts are generated when planning fails.
type PlanningError struct {
	Err error
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("blogflow: planning failed: %v", e.Err)
}

func (e *PlanningError) Unwrap() error { return e.Err }

// WritingError reports that generating or persisting a specific post failed.
// Index is zero-based; posts before it remain on disk.
type WritingError struct {
	Index int
	Err   error
}

func (e *WritingError) Error() string {
	return fmt.Sprintf("blogflow: writing post %d failed: %v", e.Index+1, e.Err)
}

func (e *WritingError) Unwrap() error { return e.Err }
