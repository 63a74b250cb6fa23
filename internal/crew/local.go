package crew

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
)

// Compile-time interface checks.
var (
	_ Executor = (*LocalExecutor)(nil)
	_ Runner   = (*LocalExecutor)(nil)
)

// LocalExecutor runs crews in-process against an LLM. Each task becomes one
// chat completion: the agent's role configuration forms the system message
// and the rendered task description (plus prior task outputs) forms the user
// message. Failed completions are retried here so callers never need to.
type LocalExecutor struct {
	llm      LLM
	planning Definition
	writing  Definition
	attempts int
	backoff  time.Duration
	logger   *log.Logger
}

// LocalOption configures a LocalExecutor during construction.
type LocalOption func(*LocalExecutor)

// WithAttempts sets how many times a failed completion is retried per task.
func WithAttempts(n int) LocalOption {
	return func(e *LocalExecutor) {
		if n > 0 {
			e.attempts = n
		}
	}
}

// WithBackoff sets the pause between completion attempts.
func WithBackoff(d time.Duration) LocalOption {
	return func(e *LocalExecutor) {
		e.backoff = d
	}
}

// WithLogger sets the executor's log sink.
func WithLogger(l *log.Logger) LocalOption {
	return func(e *LocalExecutor) {
		e.logger = l
	}
}

// WithPlanningCrew overrides the embedded planning crew definition.
func WithPlanningCrew(def Definition) LocalOption {
	return func(e *LocalExecutor) {
		e.planning = def
	}
}

// WithWritingCrew overrides the embedded writing crew definition.
func WithWritingCrew(def Definition) LocalOption {
	return func(e *LocalExecutor) {
		e.writing = def
	}
}

// NewLocalExecutor builds a LocalExecutor with the embedded blog crews.
func NewLocalExecutor(llm LLM, opts ...LocalOption) (*LocalExecutor, error) {
	if llm == nil {
		return nil, fmt.Errorf("crew: llm is required")
	}
	planning, err := BlogPlanningCrew()
	if err != nil {
		return nil, err
	}
	writing, err := BlogWritingCrew()
	if err != nil {
		return nil, err
	}

	e := &LocalExecutor{
		llm:      llm,
		planning: planning,
		writing:  writing,
		attempts: 2,
		backoff:  2 * time.Second,
		logger:   log.New(log.Writer(), "crew: ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Plan runs the planning crew and decodes its final output into a Roadmap.
func (e *LocalExecutor) Plan(ctx context.Context, req PlanRequest) (Roadmap, error) {
	bindings := map[string]string{
		"topic": req.Topic,
		"goal":  req.Goal,
	}

	result, err := e.Run(ctx, e.planning, bindings)
	if err != nil {
		return Roadmap{}, err
	}

	var roadmap Roadmap
	if err := decodeStructured(result.Final(), &roadmap); err != nil {
		return Roadmap{}, fmt.Errorf("crew %q: decode roadmap: %w", e.planning.Name, err)
	}
	return roadmap, nil
}

// Write runs the writing crew for a single post and decodes the final output.
func (e *LocalExecutor) Write(ctx context.Context, req WriteRequest) (Post, error) {
	roadmapJSON, err := json.Marshal(req.Roadmap)
	if err != nil {
		return Post{}, fmt.Errorf("crew: encode roadmap binding: %w", err)
	}

	bindings := map[string]string{
		"topic":               req.Topic,
		"goal":                req.Goal,
		"post_title":          req.PostTitle,
		"post_description":    req.PostDescription,
		"blog_roadmap":        string(roadmapJSON),
		"post_index":          fmt.Sprintf("%d", req.PostIndex),
		"post_index_plus_one": fmt.Sprintf("%d", req.PostIndexPlusOne),
		"total_posts":         fmt.Sprintf("%d", req.TotalPosts),
	}

	result, err := e.Run(ctx, e.writing, bindings)
	if err != nil {
		return Post{}, err
	}

	var post Post
	if err := decodeStructured(result.Final(), &post); err != nil {
		return Post{}, fmt.Errorf("crew %q: decode post: %w", e.writing.Name, err)
	}
	return post, nil
}

// Run executes every task of def in order. Each task sees the outputs of all
// tasks before it, so later tasks refine or review earlier work.
func (e *LocalExecutor) Run(ctx context.Context, def Definition, bindings map[string]string) (RunResult, error) {
	if err := def.Validate(); err != nil {
		return RunResult{}, err
	}

	var result RunResult
	for _, task := range def.Tasks {
		agent := def.Agents[task.Agent]
		msgs := buildTaskMessages(agent, task, bindings, result.Outputs)

		out, err := e.complete(ctx, msgs)
		if err != nil {
			return result, fmt.Errorf("crew %q: task %q: %w", def.Name, task.Name, err)
		}
		result.Outputs = append(result.Outputs, TaskOutput{Name: task.Name, Content: out})
		e.logger.Printf("%s: task %s done (%d chars)", def.Name, task.Name, len(out))
	}
	return result, nil
}

// complete calls the LLM with bounded retry.
func (e *LocalExecutor) complete(ctx context.Context, msgs []Message) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= e.attempts; attempt++ {
		if attempt > 0 {
			e.logger.Printf("retrying completion (attempt %d/%d): %v", attempt, e.attempts, lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(e.backoff):
			}
		}
		out, err := e.llm.Complete(ctx, msgs)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// buildTaskMessages renders the system and user messages for one task.
func buildTaskMessages(agent AgentSpec, task TaskSpec, bindings map[string]string, prior []TaskOutput) []Message {
	var sys strings.Builder
	fmt.Fprintf(&sys, "You are %s.\n", strings.TrimSpace(agent.Role))
	if agent.Goal != "" {
		fmt.Fprintf(&sys, "Your goal: %s\n", strings.TrimSpace(agent.Goal))
	}
	if agent.Backstory != "" {
		fmt.Fprintf(&sys, "Background: %s\n", strings.TrimSpace(agent.Backstory))
	}

	var user strings.Builder
	user.WriteString(Interpolate(task.Description, bindings))
	if len(prior) > 0 {
		user.WriteString("\n\n## Work from previous tasks\n")
		for _, out := range prior {
			fmt.Fprintf(&user, "\n### %s\n\n%s\n", out.Name, out.Content)
		}
	}
	if task.ExpectedOutput != "" {
		fmt.Fprintf(&user, "\n\nExpected output: %s", Interpolate(task.ExpectedOutput, bindings))
	}

	return []Message{
		{Role: "system", Content: sys.String()},
		{Role: "user", Content: user.String()},
	}
}

// decodeStructured parses a JSON object out of raw LLM text. Models often
// wrap JSON in markdown fences or add prose around it, so the decoder first
// strips fences, then falls back to the outermost brace pair.
func decodeStructured(raw string, v any) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return fmt.Errorf("empty output")
	}

	if fenced := extractFenced(text); fenced != "" {
		text = fenced
	} else if !strings.HasPrefix(text, "{") {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start >= 0 && end > start {
			text = text[start : end+1]
		}
	}

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// extractFenced returns the body of the first ``` fence, or "".
func extractFenced(text string) string {
	start := strings.Index(text, "```")
	if start < 0 {
		return ""
	}
	rest := text[start+3:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		// Skip the info string ("json", "markdown", ...).
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
