// Package crew defines the crew executor boundary: named groups of LLM-backed
// agents that turn input bindings into structured output. The flow layers
// treat an Executor as a black box that may retry or delegate internally.
package crew

import "context"

// Outline is a single planned post: a title plus a short free-text brief.
type Outline struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Roadmap is the ordered plan for a blog series, produced by the planning crew.
type Roadmap struct {
	Posts []Outline `json:"posts"`
}

// Post is a finished blog post produced by the writing crew.
type Post struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PlanRequest carries the inputs for the planning capability.
type PlanRequest struct {
	Topic string `json:"topic"`
	Goal  string `json:"goal"`
}

// WriteRequest carries the inputs for the writing capability. The whole
// roadmap travels with every request so a post can stay consistent with its
// siblings without the executor keeping cross-call memory.
type WriteRequest struct {
	Topic            string    `json:"topic"`
	Goal             string    `json:"goal"`
	PostTitle        string    `json:"post_title"`
	PostDescription  string    `json:"post_description"`
	Roadmap          []Outline `json:"blog_roadmap"`
	PostIndex        int       `json:"post_index"`
	PostIndexPlusOne int       `json:"post_index_plus_one"`
	TotalPosts       int       `json:"total_posts"`
}

// Executor is the blog-flow view of a crew runtime. Implementations include
// the in-process LocalExecutor and the crewrpc HTTP client.
type Executor interface {
	// Plan runs the planning crew and returns the series roadmap.
	Plan(ctx context.Context, req PlanRequest) (Roadmap, error)

	// Write runs the writing crew for a single post.
	Write(ctx context.Context, req WriteRequest) (Post, error)
}

// TaskOutput is the raw text produced by one crew task.
type TaskOutput struct {
	Name    string
	Content string
}

// RunResult holds the ordered per-task outputs of a crew run. Final is the
// last task's output, which by convention carries the crew's structured
// result.
type RunResult struct {
	Outputs []TaskOutput
}

// Final returns the last task output, or the empty string for an empty run.
func (r RunResult) Final() string {
	if len(r.Outputs) == 0 {
		return ""
	}
	return r.Outputs[len(r.Outputs)-1].Content
}

// Output returns the named task output and whether it exists.
func (r RunResult) Output(name string) (string, bool) {
	for _, out := range r.Outputs {
		if out.Name == name {
			return out.Content, true
		}
	}
	return "", false
}

// Runner executes an arbitrary crew definition against input bindings. It is
// the lower-level boundary used by flows that need per-task outputs, such as
// the job application kit.
type Runner interface {
	Run(ctx context.Context, def Definition, bindings map[string]string) (RunResult, error)
}
