// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmwithiga/tarumbeta"
	"github.com/mmwithiga/tarumbeta/config"
	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/corpus"
	"github.com/mmwithiga/tarumbeta/matching"
	"github.com/mmwithiga/tarumbeta/storage"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory (overrides database.path)",
	}
}

func learnerFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "learner",
		Usage:    "Learner id the matches belong to",
		Required: required,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tarumbeta",
		Usage: "Match music learners with instructors",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "~/.config/tarumbeta/config.yaml",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL (overrides embedding.host)",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name (overrides embedding.model)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Load instructor records into the record store",
				Action: importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON or YAML file of instructor records",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Pool the records belong to (live, synthetic)",
						Value: "live",
					},
				},
			},
			{
				Name:   "fit",
				Usage:  "Fit the feature space, index the synthetic pool and save it as the current bundle",
				Action: fitCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "instructors",
						Usage: "JSON or YAML synthetic pool (defaults to the synthetic records in the store)",
					},
					&cli.StringFlag{
						Name:  "learners",
						Usage: "JSON or YAML learner profiles included in the fit",
					},
					&cli.StringFlag{
						Name:  "index",
						Usage: "Index kind (bruteforce, vptree; overrides build.index_kind)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N candidates",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  "no-current",
						Usage: "Save the bundle without making it current",
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Rank instructors for a learner profile",
				Action: matchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "profile",
						Aliases:  []string{"p"},
						Usage:    "JSON or YAML learner profile",
						Required: true,
					},
					learnerFlag(false),
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of results (overrides matching.top_n)",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List a learner's matches, newest first",
				Action: historyCommand,
				Flags:  []cli.Flag{dbFlag(), learnerFlag(true)},
			},
			{
				Name:   "accept",
				Usage:  "Accept a suggested match",
				Action: statusCommand(core.MatchStatusAccepted),
				Flags:  []cli.Flag{dbFlag(), learnerFlag(true), matchFlag()},
			},
			{
				Name:   "decline",
				Usage:  "Decline a suggested match",
				Action: statusCommand(core.MatchStatusDeclined),
				Flags:  []cli.Flag{dbFlag(), learnerFlag(true), matchFlag()},
			},
		},
	}
}

func matchFlag() cli.Flag {
	return &cli.Uint64Flag{
		Name:     "match",
		Aliases:  []string{"m"},
		Usage:    "Match id from history",
		Required: true,
	}
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if db := c.String("db"); db != "" {
		cfg.Database.Path = db
	}
	if host := c.String("embedding-host"); host != "" {
		cfg.Embedding.Host = host
	}
	if model := c.String("embedding-model"); model != "" {
		cfg.Embedding.Model = model
	}
	if kind := c.String("index"); kind != "" {
		cfg.Build.IndexKind = kind
	}
	return cfg, nil
}

// openEngine is replaced in tests to inject a deterministic embedder.
var openEngine = func(ctx context.Context, cfg *config.Config) (*tarumbeta.Engine, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	aiConfig := cfg.AI()
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return tarumbeta.Open(ctx, path, tarumbeta.WithAIConfig(aiConfig))
}

func withEngine(c *cli.Context, fn func(ctx context.Context, cfg *config.Config, engine *tarumbeta.Engine) error) error {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()
	return fn(ctx, cfg, engine)
}

func importCommand(c *cli.Context) error {
	source, err := core.ParseSource(c.String("source"))
	if err != nil {
		return fmt.Errorf("invalid source %q: must be live or synthetic", c.String("source"))
	}
	candidates, err := corpus.LoadCandidates(c.String("file"), source)
	if err != nil {
		return err
	}

	return withEngine(c, func(ctx context.Context, _ *config.Config, engine *tarumbeta.Engine) error {
		importer, err := engine.NewImporter()
		if err != nil {
			return err
		}
		result, err := importer.Import(ctx, candidates)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		out := c.App.Writer
		fmt.Fprintf(out, "Imported %d %s instructors, skipped %d\n", len(result.Added), source, len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Fprintf(out, "  record %d (%s): %v\n", s.Index, s.Name, s.Err)
		}
		return nil
	})
}

func fitCommand(c *cli.Context) error {
	return withEngine(c, func(ctx context.Context, cfg *config.Config, engine *tarumbeta.Engine) error {
		var learners []core.Profile
		if path := c.String("learners"); path != "" {
			var err error
			if learners, err = corpus.LoadProfiles(path); err != nil {
				return err
			}
		}

		pool, err := loadPool(ctx, c.String("instructors"), engine.Candidates())
		if err != nil {
			return err
		}

		opts, err := cfg.BuilderOptions()
		if err != nil {
			return err
		}
		opts = append(opts, corpus.WithProgress(c.App.ErrWriter, c.Int("report-interval")))
		builder, err := engine.NewBuilder(opts...)
		if err != nil {
			return err
		}
		defer builder.Release()

		fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", cfg.Database.Path)
		fmt.Fprintf(c.App.ErrWriter, "Embedding host: %s\n", cfg.Embedding.Host)
		fmt.Fprintf(c.App.ErrWriter, "Embedding model: %s\n", cfg.Embedding.Model)
		fmt.Fprintln(c.App.ErrWriter)

		bundle, err := builder.Build(ctx, learners, pool, !c.Bool("no-current"))
		if err != nil {
			return fmt.Errorf("fit failed: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "Bundle %s: %d instructors, %s index, embedding dimension %d\n",
			bundle.Version, len(bundle.Candidates), bundle.IndexKind, bundle.EmbeddingDim)
		return nil
	})
}

// loadPool reads the synthetic pool from path, or from the store when path
// is empty.
func loadPool(ctx context.Context, path string, candidates storage.CandidateRepository) ([]core.Candidate, error) {
	if path != "" {
		return corpus.LoadCandidates(path, core.SourceSynthetic)
	}
	stored, err := candidates.FindCandidates(ctx, storage.CandidateFilter{Source: core.SourceSynthetic})
	if err != nil {
		return nil, err
	}
	pool := make([]core.Candidate, len(stored))
	for i, c := range stored {
		pool[i] = *c
	}
	return pool, nil
}

func matchCommand(c *cli.Context) error {
	profile, err := corpus.LoadProfile(c.String("profile"))
	if err != nil {
		return err
	}

	return withEngine(c, func(ctx context.Context, cfg *config.Config, engine *tarumbeta.Engine) error {
		opts, err := cfg.MatcherOptions()
		if err != nil {
			return err
		}
		if top := c.Int("top"); top > 0 {
			opts = append(opts, matching.WithTopN(top))
		}
		matcher, err := engine.NewMatcher(ctx, opts...)
		if err != nil {
			return err
		}

		resp, err := matcher.Match(ctx, c.String("learner"), profile)
		if err != nil {
			return fmt.Errorf("match failed: %w", err)
		}
		printResponse(c, resp)
		return nil
	})
}

func printResponse(c *cli.Context, resp *matching.Response) {
	out := c.App.Writer
	fmt.Fprintf(out, "Strategy: %s, pool: %s, found: %d\n", resp.Strategy, resp.Pool, resp.TotalFound)
	if resp.Message != "" {
		fmt.Fprintln(out, resp.Message)
	}
	for i, m := range resp.Matches {
		ref := m.Identity.ProfileID
		if m.Proxy {
			ref += ", via " + m.Identity.Name
		}
		fmt.Fprintf(out, "\n%d. %s (%s) - %s %d/100\n", i+1, m.Name, ref, m.Strength, m.MatchScore)
		fmt.Fprintf(out, "   %s, %s, KES %s/hour\n", m.Instrument, m.Location, strconv.FormatFloat(m.HourlyRate, 'f', -1, 64))
		for _, reason := range m.Reasons {
			fmt.Fprintf(out, "   ✓ %s\n", reason)
		}
	}
}

func historyCommand(c *cli.Context) error {
	return withEngine(c, func(ctx context.Context, cfg *config.Config, engine *tarumbeta.Engine) error {
		matcher, err := newLogMatcher(engine)
		if err != nil {
			return err
		}
		entries, err := matcher.History(ctx, c.String("learner"))
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(c.App.Writer, "No matches yet")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(c.App.Writer, "%d\t%s\t%d\t%s\t%s\n",
				e.Id, e.CandidateRef, e.Score, e.Status, e.CreatedAt.Local().Format(time.DateTime))
		}
		return nil
	})
}

func statusCommand(status core.MatchStatus) cli.ActionFunc {
	return func(c *cli.Context) error {
		return withEngine(c, func(ctx context.Context, cfg *config.Config, engine *tarumbeta.Engine) error {
			matcher, err := newLogMatcher(engine)
			if err != nil {
				return err
			}
			learner, id := c.String("learner"), core.ID(c.Uint64("match"))
			var entry *core.MatchLogEntry
			if status == core.MatchStatusAccepted {
				entry, err = matcher.Accept(ctx, learner, id)
			} else {
				entry, err = matcher.Decline(ctx, learner, id)
			}
			if err != nil {
				return fmt.Errorf("failed to update match %d: %w", id, err)
			}
			fmt.Fprintf(c.App.Writer, "Match %d %s\n", entry.Id, entry.Status)
			return nil
		})
	}
}

// newLogMatcher builds a matcher for match log operations, which need no
// bundle or embedder.
func newLogMatcher(engine *tarumbeta.Engine) (*matching.Matcher, error) {
	return matching.NewMatcher(engine.Candidates(), engine.MatchLogs(), matching.RuleBasedStrategy{})
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
