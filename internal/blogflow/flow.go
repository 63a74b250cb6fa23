// Package blogflow drives the two-phase blog generation pipeline: obtain a
// roadmap (plan it, or load a previously persisted one), then write each
// post strictly in order, persisting every artifact as it completes. The
// crew executor is an opaque collaborator; this layer never retries and no
// two executor calls are ever in flight at once.
package blogflow

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/slavadubrov/crew-agents/internal/crew"
	"github.com/slavadubrov/crew-agents/internal/roadmap"
)

// Phase is the flow's position in its run lifecycle.
type Phase int

const (
	PhaseInit Phase = iota
	PhasePlanning
	PhasePlanned
	PhaseWriting
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhasePlanning:
		return "planning"
	case PhasePlanned:
		return "planned"
	case PhaseWriting:
		return "writing"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the in-memory record of one run. It is owned exclusively by its
// Controller and discarded at process exit; the markdown artifacts on disk
// are the only durable output. Posts[i] corresponds to Roadmap[i] once
// produced, and len(Posts) never exceeds len(Roadmap).
type State struct {
	ID      string
	Title   string
	Topic   string
	Goal    string
	Roadmap []crew.Outline
	Posts   []crew.Post
	Phase   Phase

	// FailedIndex is the zero-based index of the post whose generation
	// failed, or -1 when the run has not failed during writing.
	FailedIndex int
}

// Config holds everything a run needs up front. Logger and progress are
// injected explicitly; there is no process-wide mutable state.
type Config struct {
	Topic        string
	Goal         string
	OutputDir    string
	SkipPlanning bool

	// RoadmapFile is the roadmap document to resume from. Required when
	// SkipPlanning is set.
	RoadmapFile string
}

// Controller runs the flow. Create one per run.
type Controller struct {
	cfg      Config
	exec     crew.Executor
	logger   *log.Logger
	progress *Reporter
	state    *State
}

// Option configures a Controller during construction.
type Option func(*Controller)

// WithLogger sets the controller's log sink.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// New validates cfg and builds a Controller. A skip-planning run without a
// roadmap file is rejected here, before any side effect.
func New(cfg Config, exec crew.Executor, opts ...Option) (*Controller, error) {
	if exec == nil {
		return nil, &ConfigError{Reason: "crew executor is required"}
	}
	if cfg.SkipPlanning && cfg.RoadmapFile == "" {
		return nil, &ConfigError{Reason: "a roadmap file is required when planning is skipped"}
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	c := &Controller{
		cfg:      cfg,
		exec:     exec,
		logger:   log.New(io.Discard, "", 0),
		progress: NewReporter(),
		state: &State{
			ID:          uuid.NewString(),
			Title:       cfg.Topic,
			Topic:       cfg.Topic,
			Goal:        cfg.Goal,
			Phase:       PhaseInit,
			FailedIndex: -1,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// State returns the run's state record.
func (c *Controller) State() *State {
	return c.state
}

// Progress returns a channel emitting flow events.
func (c *Controller) Progress() <-chan Event {
	return c.progress.Subscribe()
}

// Close releases the progress channel.
func (c *Controller) Close() {
	c.progress.Close()
}

// RoadmapPath returns where this run persists its roadmap document.
func (c *Controller) RoadmapPath() string {
	return filepath.Join(c.cfg.OutputDir, roadmap.DefaultFilename)
}

// Kickoff runs both phases and returns the final state. The state is also
// returned on failure so callers can see partial progress.
func (c *Controller) Kickoff(ctx context.Context) (*State, error) {
	if err := c.ObtainRoadmap(ctx); err != nil {
		return c.state, err
	}
	if err := c.GeneratePosts(ctx); err != nil {
		return c.state, err
	}
	return c.state, nil
}

// ObtainRoadmap populates the state's topic, goal, and roadmap. With
// planning enabled it invokes the planning crew and persists the roadmap
// document before returning, so a crash later in the run cannot lose the
// plan. With planning skipped it loads the configured roadmap file instead;
// the file already exists on disk, so nothing is re-persisted.
func (c *Controller) ObtainRoadmap(ctx context.Context) error {
	if c.cfg.SkipPlanning {
		return c.loadRoadmap()
	}

	c.state.Phase = PhasePlanning
	c.progress.Emit(Event{Phase: PhasePlanning, Index: -1, Status: StatusWorking})
	c.logger.Printf("planning series about %q", c.cfg.Topic)

	plan, err := c.exec.Plan(ctx, crew.PlanRequest{Topic: c.cfg.Topic, Goal: c.cfg.Goal})
	if err != nil {
		c.fail(-1)
		c.progress.Emit(Event{Phase: PhasePlanning, Index: -1, Status: StatusFailed, Message: err.Error()})
		return &PlanningError{Err: err}
	}
	if len(plan.Posts) == 0 {
		c.fail(-1)
		return &PlanningError{Err: fmt.Errorf("planning crew returned an empty roadmap")}
	}

	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		c.fail(-1)
		return &PlanningError{Err: fmt.Errorf("create output dir: %w", err)}
	}
	doc := roadmap.Document{Topic: c.state.Topic, Goal: c.state.Goal, Outlines: plan.Posts}
	if err := roadmap.WriteFile(c.RoadmapPath(), doc); err != nil {
		c.fail(-1)
		return &PlanningError{Err: err}
	}

	c.state.Roadmap = plan.Posts
	c.state.Phase = PhasePlanned
	c.progress.Emit(Event{Phase: PhasePlanned, Index: -1, Status: StatusComplete})
	c.logger.Printf("roadmap with %d posts saved to %s", len(plan.Posts), c.RoadmapPath())
	return nil
}

// loadRoadmap resumes from a previously persisted roadmap document. The
// parser is tolerant, so usability is validated here: a document that yields
// no topic or no outlines is rejected as a configuration problem.
func (c *Controller) loadRoadmap() error {
	doc, err := roadmap.ParseFile(c.cfg.RoadmapFile)
	if err != nil {
		c.fail(-1)
		return &ConfigError{Reason: err.Error()}
	}
	if len(doc.Outlines) == 0 {
		c.fail(-1)
		return &ConfigError{Reason: fmt.Sprintf("roadmap file %s contains no post outlines", c.cfg.RoadmapFile)}
	}
	if doc.Topic == "" {
		c.fail(-1)
		return &ConfigError{Reason: fmt.Sprintf("roadmap file %s has no topic", c.cfg.RoadmapFile)}
	}

	c.state.Topic = doc.Topic
	c.state.Title = doc.Topic
	c.state.Goal = doc.Goal
	c.state.Roadmap = doc.Outlines
	c.state.Phase = PhasePlanned
	c.progress.Emit(Event{Phase: PhasePlanned, Index: -1, Status: StatusComplete})
	c.logger.Printf("loaded roadmap from %s with %d posts", c.cfg.RoadmapFile, len(doc.Outlines))
	return nil
}

// GeneratePosts writes every post in the roadmap, strictly in order, one
// executor call at a time. Each finished post is persisted immediately, so
// a failure at index i leaves posts 0..i-1 on disk and stops the run with a
// WritingError carrying i. Posts are never generated concurrently: each one
// sees the full roadmap and later posts may rely on how earlier ones framed
// the subject.
func (c *Controller) GeneratePosts(ctx context.Context) error {
	if c.state.Phase != PhasePlanned {
		return &ConfigError{Reason: fmt.Sprintf("cannot generate posts in phase %s", c.state.Phase)}
	}

	total := len(c.state.Roadmap)
	c.state.Phase = PhaseWriting

	for i, outline := range c.state.Roadmap {
		c.progress.Emit(Event{Phase: PhaseWriting, Index: i, Title: outline.Title, Status: StatusWorking})
		c.logger.Printf("writing post %d/%d: %s", i+1, total, outline.Title)

		post, err := c.exec.Write(ctx, crew.WriteRequest{
			Topic:            c.state.Topic,
			Goal:             c.state.Goal,
			PostTitle:        outline.Title,
			PostDescription:  outline.Description,
			Roadmap:          c.state.Roadmap,
			PostIndex:        i,
			PostIndexPlusOne: i + 1,
			TotalPosts:       total,
		})
		if err != nil {
			c.fail(i)
			c.progress.Emit(Event{Phase: PhaseWriting, Index: i, Title: outline.Title, Status: StatusFailed, Message: err.Error()})
			return &WritingError{Index: i, Err: err}
		}

		c.state.Posts = append(c.state.Posts, post)

		path, err := writePostFile(c.cfg.OutputDir, i+1, post.Title, post.Content)
		if err != nil {
			c.fail(i)
			return &WritingError{Index: i, Err: err}
		}

		c.progress.Emit(Event{Phase: PhaseWriting, Index: i, Title: outline.Title, Status: StatusComplete})
		c.logger.Printf("post saved as %s", path)
	}

	c.state.Phase = PhaseDone
	c.logger.Printf("completed %d posts", len(c.state.Posts))
	return nil
}

func (c *Controller) fail(index int) {
	c.state.Phase = PhaseFailed
	c.state.FailedIndex = index
}
