// Package jobkit tailors a resume and prepares interview materials for one
// job posting. It is a single crew run over the same executor machinery the
// blog flow uses, with two artifacts persisted from the crew's task outputs.
package jobkit

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/slavadubrov/crew-agents/internal/crew"
)

// Artifact filenames written into the output directory.
const (
	ResumeFilename    = "tailored_resume.md"
	InterviewFilename = "interview_materials.md"
)

// Crew task names whose outputs become artifacts.
const (
	resumeTask    = "tailor_resume"
	interviewTask = "prepare_interview"
)

// Inputs identifies the candidate and the posting. ResumePath must point to
// a Markdown resume.
type Inputs struct {
	ResumePath      string
	JobPostingURL   string
	GithubURL       string
	PersonalWriteup string
}

func (in Inputs) validate() error {
	if in.ResumePath == "" {
		return fmt.Errorf("jobkit: resume path is required")
	}
	if in.JobPostingURL == "" {
		return fmt.Errorf("jobkit: job posting url is required")
	}
	return nil
}

// Kit is the result of a run: both artifacts plus where they were written.
type Kit struct {
	TailoredResume     string
	InterviewMaterials string
	ResumePath         string
	InterviewPath      string
}

// Controller drives one job application run.
type Controller struct {
	runner    crew.Runner
	def       crew.Definition
	outputDir string
	logger    *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's log sink.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithCrew overrides the embedded job application crew definition.
func WithCrew(def crew.Definition) Option {
	return func(c *Controller) {
		c.def = def
	}
}

// New builds a Controller writing artifacts to outputDir.
func New(runner crew.Runner, outputDir string, opts ...Option) (*Controller, error) {
	if runner == nil {
		return nil, fmt.Errorf("jobkit: crew runner is required")
	}
	if outputDir == "" {
		outputDir = "output"
	}
	def, err := crew.JobApplicationCrew()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		runner:    runner,
		def:       def,
		outputDir: outputDir,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run executes the crew and persists both artifacts. The resume file is read
// up front so a bad path fails before any crew work starts.
func (c *Controller) Run(ctx context.Context, in Inputs) (*Kit, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	resume, err := os.ReadFile(in.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("jobkit: read resume: %w", err)
	}

	bindings := map[string]string{
		"resume":           string(resume),
		"job_posting_url":  in.JobPostingURL,
		"github_url":       in.GithubURL,
		"personal_writeup": in.PersonalWriteup,
	}

	c.logger.Printf("tailoring resume for %s", in.JobPostingURL)
	result, err := c.runner.Run(ctx, c.def, bindings)
	if err != nil {
		return nil, fmt.Errorf("jobkit: crew run: %w", err)
	}

	tailored, ok := result.Output(resumeTask)
	if !ok || tailored == "" {
		return nil, fmt.Errorf("jobkit: crew produced no %s output", resumeTask)
	}
	interview, ok := result.Output(interviewTask)
	if !ok || interview == "" {
		return nil, fmt.Errorf("jobkit: crew produced no %s output", interviewTask)
	}

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("jobkit: create output dir: %w", err)
	}

	kit := &Kit{
		TailoredResume:     tailored,
		InterviewMaterials: interview,
		ResumePath:         filepath.Join(c.outputDir, ResumeFilename),
		InterviewPath:      filepath.Join(c.outputDir, InterviewFilename),
	}
	if err := os.WriteFile(kit.ResumePath, []byte(tailored), 0o644); err != nil {
		return nil, fmt.Errorf("jobkit: write %s: %w", kit.ResumePath, err)
	}
	if err := os.WriteFile(kit.InterviewPath, []byte(interview), 0o644); err != nil {
		return nil, fmt.Errorf("jobkit: write %s: %w", kit.InterviewPath, err)
	}

	c.logger.Printf("artifacts saved to %s and %s", kit.ResumePath, kit.InterviewPath)
	return kit, nil
}
