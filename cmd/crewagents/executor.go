package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/slavadubrov/crew-agents/internal/config"
	"github.com/slavadubrov/crew-agents/internal/crew"
	"github.com/slavadubrov/crew-agents/internal/crewrpc"
)

const defaultModel = "gpt-4o-mini"

// newLogger returns a stderr logger when verbose, silent otherwise.
func newLogger(verbose bool) *log.Logger {
	if verbose {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// splitExecutor routes planning and writing to different executors,
// so each crew can live behind its own service.
type splitExecutor struct {
	plan  crew.Executor
	write crew.Executor
}

var _ crew.Executor = (*splitExecutor)(nil)

func (s *splitExecutor) Plan(ctx context.Context, req crew.PlanRequest) (crew.Roadmap, error) {
	return s.plan.Plan(ctx, req)
}

func (s *splitExecutor) Write(ctx context.Context, req crew.WriteRequest) (crew.Post, error) {
	return s.write.Write(ctx, req)
}

// newLocalExecutor builds an in-process executor backed by the OpenAI
// API. The key comes from OPENAI_API_KEY.
func newLocalExecutor(cfg *config.ProjectConfig, model string, logger *log.Logger) (*crew.LocalExecutor, error) {
	if model == "" {
		model = cfg.Model
	}
	if model == "" {
		model = defaultModel
	}

	llm, err := crew.NewOpenAILLM(crew.LLMSettings{
		Model:   model,
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	opts := []crew.LocalOption{crew.WithLogger(logger)}
	if cfg.Retries > 0 {
		opts = append(opts, crew.WithAttempts(cfg.Retries))
	}
	return crew.NewLocalExecutor(llm, opts...)
}

// buildExecutor wires the crews the config asks for: remote clients
// when endpoints are set, an in-process executor otherwise. When only
// one endpoint is configured it serves both crews.
func buildExecutor(cfg *config.ProjectConfig, model string, logger *log.Logger) (crew.Executor, error) {
	planEP, writeEP := cfg.PlanEndpoint, cfg.WriteEndpoint
	if planEP == "" && writeEP == "" {
		return newLocalExecutor(cfg, model, logger)
	}
	if planEP == "" {
		planEP = writeEP
	}
	if writeEP == "" {
		writeEP = planEP
	}
	if planEP == writeEP {
		return crewrpc.NewClient(planEP), nil
	}
	return &splitExecutor{
		plan:  crewrpc.NewClient(planEP),
		write: crewrpc.NewClient(writeEP),
	}, nil
}
