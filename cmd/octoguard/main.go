/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the octoguard pipeline for a single GitHub issue or
// pull request: sanitized untrusted content in, validated actions out.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/octoguard/octoguard/agent"
	"github.com/octoguard/octoguard/triage"
	"github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

type config struct {
	// Mode selects the pipeline: "triage" for issues, "review" for PRs.
	Mode string `env:"MODE,default=triage"`

	Owner  string `env:"GITHUB_OWNER,required"`
	Repo   string `env:"GITHUB_REPO,required"`
	Number int    `env:"GITHUB_NUMBER,required"`

	// EventPath points at the raw event payload (GITHUB_EVENT_PATH in
	// Actions). Optional; without it the run starts at dispatch depth 0.
	EventPath string `env:"GITHUB_EVENT_PATH"`

	// Token auth, or GitHub App auth when AppID is set.
	GitHubToken    string `env:"GITHUB_TOKEN"`
	AppID          int64  `env:"GITHUB_APP_ID"`
	InstallationID int64  `env:"GITHUB_APP_INSTALLATION_ID"`
	PrivateKeyPath string `env:"GITHUB_APP_PRIVATE_KEY_PATH"`

	Provider        string        `env:"MODEL_PROVIDER,default=claude"`
	Model           string        `env:"MODEL"`
	AnthropicAPIKey string        `env:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	ModelTimeout    time.Duration `env:"MODEL_TIMEOUT,default=2m"`

	MetricsPort int    `env:"METRICS_PORT,default=2112"`
	PolicyPath  string `env:"POLICY_PATH"`
	DryRun      bool   `env:"DRY_RUN,default=false"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	policy, err := triage.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		clog.FatalContextf(ctx, "loading policy: %v", err)
	}

	gh, err := githubClient(ctx, cfg)
	if err != nil {
		clog.FatalContextf(ctx, "creating GitHub client: %v", err)
	}
	completer, err := newCompleter(cfg)
	if err != nil {
		clog.FatalContextf(ctx, "creating completer: %v", err)
	}

	triager := triage.New(gh, completer,
		triage.WithPolicy(policy),
		triage.WithModelTimeout(cfg.ModelTimeout),
		triage.WithDryRun(cfg.DryRun),
	)

	ev, err := loadEvent(cfg.EventPath)
	if err != nil {
		clog.FatalContextf(ctx, "loading event: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		return run(ctx, cfg, triager, ev)
	})
	if err := eg.Wait(); err != nil {
		clog.FatalContextf(ctx, "run failed: %v", err)
	}
}

func run(ctx context.Context, cfg config, triager *triage.Triager, ev triage.Event) error {
	switch cfg.Mode {
	case "triage":
		result, err := triager.TriageIssue(ctx, cfg.Owner, cfg.Repo, cfg.Number, ev)
		if err != nil {
			return err
		}
		if result != nil {
			printTriageReport(os.Stdout, *result)
		}
		return nil
	case "review":
		result, err := triager.ReviewPR(ctx, cfg.Owner, cfg.Repo, cfg.Number, ev)
		if err != nil {
			return err
		}
		if result != nil {
			printReviewReport(os.Stdout, *result)
		}
		return nil
	default:
		return fmt.Errorf("unknown mode %q (want triage or review)", cfg.Mode)
	}
}

// loadEvent reads the raw event payload from path, returning a zero Event
// for an empty path.
func loadEvent(path string) (triage.Event, error) {
	if path == "" {
		return triage.Event{}, nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return triage.Event{}, fmt.Errorf("reading event payload: %w", err)
	}
	return triage.ParseEvent(payload)
}

// githubClient builds a GitHub client from App credentials when AppID is
// set, or from a PAT otherwise.
func githubClient(ctx context.Context, cfg config) (*github.Client, error) {
	if cfg.AppID != 0 {
		itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("creating app transport: %w", err)
		}
		return github.NewClient(&http.Client{Transport: itr}), nil
	}
	if cfg.GitHubToken == "" {
		return nil, errors.New("either GITHUB_TOKEN or GITHUB_APP_ID must be set")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHubToken})
	return github.NewClient(oauth2.NewClient(ctx, ts)), nil
}

// newCompleter builds the model client for the configured provider.
func newCompleter(cfg config) (agent.Completer, error) {
	switch cfg.Provider {
	case "claude":
		var opts []agent.ClaudeOption
		if cfg.Model != "" {
			opts = append(opts, agent.WithClaudeModel(cfg.Model))
		}
		client := anthropic.NewClient(anthropicopt.WithAPIKey(cfg.AnthropicAPIKey))
		return agent.NewClaude(client, opts...), nil
	case "openai":
		var opts []agent.OpenAIOption
		if cfg.Model != "" {
			opts = append(opts, agent.WithOpenAIModel(cfg.Model))
		}
		client := openai.NewClient(openaiopt.WithAPIKey(cfg.OpenAIAPIKey))
		return agent.NewOpenAI(client, opts...), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q (want claude or openai)", cfg.Provider)
	}
}
