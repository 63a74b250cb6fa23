// Package mcptools exposes the blog flow as MCP tools, so an agent
// host can plan roadmaps and write posts through structured tool calls
// instead of shelling out to the CLI.
package mcptools

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/slavadubrov/crew-agents/internal/blogflow"
	"github.com/slavadubrov/crew-agents/internal/crew"
	"github.com/slavadubrov/crew-agents/internal/roadmap"
	"github.com/slavadubrov/crew-agents/internal/status"
)

// DefaultOutputDir is used when a tool call does not name a directory.
const DefaultOutputDir = "output"

// FlowService handles MCP tool calls for the blog flow server mode.
// It wraps a crew executor; every tool works against artifacts in an
// output directory, so separate calls compose into one series.
type FlowService struct {
	exec   crew.Executor
	dir    string
	logger *log.Logger
}

// FlowServiceOption configures a FlowService.
type FlowServiceOption func(*FlowService)

// WithFlowLogger replaces the service logger.
func WithFlowLogger(l *log.Logger) FlowServiceOption {
	return func(s *FlowService) {
		s.logger = l
	}
}

// NewFlowService creates a FlowService around exec. dir is the default
// output directory for tool calls that do not name one.
func NewFlowService(exec crew.Executor, dir string, opts ...FlowServiceOption) *FlowService {
	if dir == "" {
		dir = DefaultOutputDir
	}
	s := &FlowService{
		exec:   exec,
		dir:    dir,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlowService) outputDir(requested string) string {
	if requested != "" {
		return requested
	}
	return s.dir
}

// PlanRoadmap runs the planning crew and persists the roadmap document.
func (s *FlowService) PlanRoadmap(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanRoadmapInput,
) (*mcp.CallToolResult, PlanRoadmapOutput, error) {
	ctrl, err := blogflow.New(blogflow.Config{
		Topic:     input.Topic,
		Goal:      input.Goal,
		OutputDir: s.outputDir(input.OutputDir),
	}, s.exec, blogflow.WithLogger(s.logger))
	if err != nil {
		return nil, PlanRoadmapOutput{}, err
	}
	defer ctrl.Close()

	if err := ctrl.ObtainRoadmap(ctx); err != nil {
		return nil, PlanRoadmapOutput{}, err
	}

	state := ctrl.State()
	out := PlanRoadmapOutput{RoadmapPath: ctrl.RoadmapPath()}
	for i, outline := range state.Roadmap {
		out.Posts = append(out.Posts, OutlineSummary{
			Number:      i + 1,
			Title:       outline.Title,
			Description: outline.Description,
		})
	}
	return nil, out, nil
}

// WritePost writes one post from the roadmap already on disk. Posts
// may be produced one call at a time, in any order the host chooses.
func (s *FlowService) WritePost(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input WritePostInput,
) (*mcp.CallToolResult, WritePostOutput, error) {
	dir := s.outputDir(input.OutputDir)

	doc, err := roadmap.ParseFile(filepath.Join(dir, roadmap.DefaultFilename))
	if err != nil {
		return nil, WritePostOutput{}, fmt.Errorf("load roadmap: %w", err)
	}
	total := len(doc.Outlines)
	if total == 0 {
		return nil, WritePostOutput{}, fmt.Errorf("roadmap in %s contains no post outlines", dir)
	}
	if input.Number < 1 || input.Number > total {
		return nil, WritePostOutput{}, fmt.Errorf("post number must be 1-%d, got %d", total, input.Number)
	}

	i := input.Number - 1
	outline := doc.Outlines[i]
	s.logger.Printf("writing post %d/%d: %s", input.Number, total, outline.Title)

	post, err := s.exec.Write(ctx, crew.WriteRequest{
		Topic:            doc.Topic,
		Goal:             doc.Goal,
		PostTitle:        outline.Title,
		PostDescription:  outline.Description,
		Roadmap:          doc.Outlines,
		PostIndex:        i,
		PostIndexPlusOne: input.Number,
		TotalPosts:       total,
	})
	if err != nil {
		return nil, WritePostOutput{}, fmt.Errorf("write post %d: %w", input.Number, err)
	}

	path := filepath.Join(dir, blogflow.PostFilename(input.Number, post.Title))
	if err := os.WriteFile(path, []byte(post.Content), 0o644); err != nil {
		return nil, WritePostOutput{}, fmt.Errorf("save post %d: %w", input.Number, err)
	}

	return nil, WritePostOutput{
		Number: input.Number,
		Title:  post.Title,
		Path:   path,
	}, nil
}

// RunBlogFlow runs the whole flow: plan (or resume) then write every
// post in order. Partial progress survives in the output directory.
func (s *FlowService) RunBlogFlow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunBlogFlowInput,
) (*mcp.CallToolResult, RunBlogFlowOutput, error) {
	dir := s.outputDir(input.OutputDir)

	cfg := blogflow.Config{
		Topic:     input.Topic,
		Goal:      input.Goal,
		OutputDir: dir,
	}
	if input.Resume {
		cfg.SkipPlanning = true
		cfg.RoadmapFile = filepath.Join(dir, roadmap.DefaultFilename)
	}

	ctrl, err := blogflow.New(cfg, s.exec, blogflow.WithLogger(s.logger))
	if err != nil {
		return nil, RunBlogFlowOutput{}, err
	}
	defer ctrl.Close()

	state, runErr := ctrl.Kickoff(ctx)

	out := RunBlogFlowOutput{
		Phase:       state.Phase.String(),
		RoadmapPath: ctrl.RoadmapPath(),
	}
	for i, post := range state.Posts {
		out.Posts = append(out.Posts, PostSummary{
			Number: i + 1,
			Title:  post.Title,
			Path:   filepath.Join(dir, blogflow.PostFilename(i+1, post.Title)),
		})
	}
	if runErr != nil {
		if state.FailedIndex >= 0 {
			out.FailedNumber = state.FailedIndex + 1
		}
		out.Message = runErr.Error()
	}
	// The flow result is reported in the output even on failure, so
	// the host can see partial progress. The error is not returned.
	return nil, out, nil
}

// GetFlowStatus reports roadmap presence and written posts for a
// directory, derived entirely from the artifacts on disk.
func (s *FlowService) GetFlowStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetFlowStatusInput,
) (*mcp.CallToolResult, GetFlowStatusOutput, error) {
	dir := s.outputDir(input.OutputDir)

	report, err := status.Scan(dir)
	if err != nil {
		return nil, GetFlowStatusOutput{}, err
	}

	out := GetFlowStatusOutput{
		Dir:        report.Dir,
		HasRoadmap: report.HasRoadmap,
		Topic:      report.Topic,
		Planned:    report.Planned,
		NextNumber: report.NextNumber,
		Complete:   report.Complete,
	}
	for _, p := range report.Posts {
		out.Written = append(out.Written, PostSummary{
			Number: p.Number,
			Path:   filepath.Join(dir, p.Filename),
		})
	}
	return nil, out, nil
}
