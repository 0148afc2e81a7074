// Copyright 2026 Poiesic Systems
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
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/callsearch"
	"github.com/poiesic/callsearch/assistant"
	"github.com/poiesic/callsearch/assistant/openai"
	"github.com/poiesic/callsearch/assistant/runpod"
	"github.com/poiesic/callsearch/config"
	"github.com/poiesic/callsearch/core"
	"github.com/poiesic/callsearch/server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "callsearch",
		Usage: "Full-text search and AI analysis for call transcripts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the search web UI and API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML config file",
					},
					&cli.StringFlag{
						Name:    "transcripts",
						Aliases: []string{"t"},
						Usage:   "Transcript directory (overrides config)",
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides config)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a one-shot search from the command line",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "transcripts",
						Aliases:  []string{"t"},
						Usage:    "Transcript directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "speaker",
						Usage: "Speaker filter (all, agent, customer)",
						Value: "all",
					},
					&cli.BoolFlag{
						Name:  "case-sensitive",
						Usage: "Match case exactly",
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Parse transcripts into the on-disk cache",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "transcripts",
						Aliases:  []string{"t"},
						Usage:    "Transcript directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "cache",
						Usage:    "BadgerDB cache directory",
						Required: true,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask the assistant a question from the command line",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML config file",
					},
					&cli.StringFlag{
						Name:    "transcripts",
						Aliases: []string{"t"},
						Usage:   "Transcript directory (overrides config)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
		cfg.Normalize()
	}

	if dir := c.String("transcripts"); dir != "" {
		cfg.Transcripts.Dir = dir
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	return cfg, nil
}

func buildGenerator(cfg *config.Config) (assistant.Generator, error) {
	switch cfg.Assistant.Backend {
	case "":
		return nil, nil
	case "runpod":
		return runpod.NewClient(cfg.Assistant.RunPod.EndpointID, cfg.Assistant.RunPod.APIKey)
	case "openai":
		return openai.NewGenerator(cfg.Assistant.OpenAI.Host, cfg.Assistant.OpenAI.Token, cfg.Assistant.OpenAI.Model)
	default:
		return nil, fmt.Errorf("unknown assistant backend %q", cfg.Assistant.Backend)
	}
}

func buildApp(cfg *config.Config, watch bool) (*callsearch.App, error) {
	var opts []callsearch.AppOption
	if cfg.Cache.Dir != "" {
		opts = append(opts, callsearch.WithCache(cfg.Cache.Dir))
	}
	if watch {
		opts = append(opts, callsearch.WithWatch())
	}

	generator, err := buildGenerator(cfg)
	if err != nil {
		return nil, err
	}
	if generator != nil {
		opts = append(opts, callsearch.WithGenerator(generator))
	}

	return callsearch.NewApp(cfg.Transcripts.Dir, opts...)
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	app, err := buildApp(cfg, cfg.Transcripts.Watch)
	if err != nil {
		return err
	}
	defer app.Close()

	var serverOpts []server.Option
	if app.Assistant() != nil {
		serverOpts = append(serverOpts, server.WithAssistant(app.Assistant()))
	}

	srv, err := server.NewServer(app.Corpus(), serverOpts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("serving",
		"addr", cfg.Server.Addr,
		"transcripts", app.Corpus().Len(),
		"utterances", app.Corpus().TotalUtterances())

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query required")
	}

	app, err := callsearch.NewApp(c.String("transcripts"))
	if err != nil {
		return err
	}
	defer app.Close()

	filter := core.SpeakerFilterFromString(c.String("speaker"))
	result, err := app.Searcher().Search(c.Context, query, filter, c.Bool("case-sensitive"))
	if err != nil {
		return err
	}

	for _, match := range result.Matches {
		fmt.Printf("%s (%d matches)\n", match.Transcript.Name, match.Total)
		for _, m := range match.Utterances {
			fmt.Printf("  [%s - %s] %s: %s\n",
				m.Utterance.Start, m.Utterance.End, m.Utterance.Speaker, m.Utterance.Text)
		}
	}
	fmt.Printf("\n%d transcripts, %d matches in %s\n",
		result.Transcripts, result.Total, result.Elapsed)
	return nil
}

func ingestCommand(c *cli.Context) error {
	app, err := callsearch.NewApp(c.String("transcripts"),
		callsearch.WithCache(c.String("cache")))
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Printf("Cached %d transcripts (%d utterances)\n",
		app.Corpus().Len(), app.Corpus().TotalUtterances())
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Assistant.Backend == "" {
		return fmt.Errorf("no assistant backend configured")
	}

	app, err := buildApp(cfg, false)
	if err != nil {
		return err
	}
	defer app.Close()

	answer, err := app.Assistant().Ask(c.Context, question)
	if err != nil {
		return err
	}

	fmt.Printf("Analyzed %d of %d transcripts\n\n",
		answer.TranscriptsAnalyzed, answer.TotalTranscripts)
	fmt.Println(answer.Raw)
	return nil
}

func setupLogger(c *cli.Context) error {
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
		return fmt.Errorf("invalid log level: %s", levelStr)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}
