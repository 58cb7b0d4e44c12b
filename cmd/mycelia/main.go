// Copyright 2025 Hyphal Labs
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
	"bufio"
	"context"
	"fmt"
	"iter"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hyphal/mycelia"
	"github.com/hyphal/mycelia/ai"
	"github.com/hyphal/mycelia/ai/anthropic"
	"github.com/hyphal/mycelia/ingestion"
	"github.com/hyphal/mycelia/search"
	"github.com/hyphal/mycelia/vault"
)

func main() {
	app := &cli.App{
		Name:  "mycelia",
		Usage: "Personal AI companion over a local markdown vault",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:     "vault",
				Aliases:  []string{"v"},
				Usage:    "Path to the markdown vault",
				EnvVars:  []string{"MYCELIA_VAULT"},
				Required: true,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Create the vault folder structure",
				Action: initCommand,
			},
			{
				Name:      "search",
				Usage:     "Search the vault index",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "Print index statistics for the query",
					},
				},
			},
			{
				Name:      "context",
				Usage:     "Show the vault context assembled for a query",
				ArgsUsage: "<query>",
				Action:    contextCommand,
			},
			{
				Name:   "chat",
				Usage:  "Chat with the assistant (interactive)",
				Action: chatCommand,
				Flags:  chatFlags(),
			},
			{
				Name:   "extract",
				Usage:  "Run one knowledge extraction pass over recent chat history",
				Action: extractCommand,
				Flags:  chatFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func chatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "model",
			Usage:   "Anthropic model name",
			EnvVars: []string{"MYCELIA_MODEL"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "Anthropic API token",
			EnvVars: []string{"ANTHROPIC_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "perspective",
			Usage:   "Voice for extracted notes (second, first, plural)",
			Value:   "second",
			EnvVars: []string{"MYCELIA_PERSPECTIVE"},
		},
		&cli.StringFlag{
			Name:    "journal-format",
			Usage:   "Journal filename format id",
			Value:   vault.DefaultJournalFormat,
			EnvVars: []string{"MYCELIA_JOURNAL_FORMAT"},
		},
	}
}

func initCommand(c *cli.Context) error {
	v, err := vault.New(c.String("vault"))
	if err != nil {
		return err
	}
	if err := v.EnsureStructure(); err != nil {
		return err
	}
	fmt.Printf("Initialized vault at %s\n", v.Root())
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	v, err := vault.New(c.String("vault"))
	if err != nil {
		return err
	}

	cache, err := search.NewCache(v)
	if err != nil {
		return err
	}

	index, err := cache.Ensure(context.Background())
	if err != nil {
		return err
	}
	if index == nil {
		fmt.Println("Vault has no notes yet.")
		return nil
	}

	var results []search.Result
	if c.Bool("debug") {
		results = index.SearchWithMonitor(query, c.Int("limit"), &debugMonitor{out: os.Stderr})
	} else {
		results = index.Search(query, c.Int("limit"))
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%6.3f  %s\n", r.Score, r.Path)
	}
	return nil
}

func contextCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	out, err := assistant.Context(context.Background(), query)
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Println("No relevant context.")
		return nil
	}
	fmt.Println(out)
	return nil
}

func chatCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Println("Chatting with Mycelia. Ctrl-D to exit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		reply, err := assistant.Chat(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Printf("\n%s\n\n", reply)
	}
	return scanner.Err()
}

func extractCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	return assistant.Extract(context.Background())
}

// openAssistant builds the full assistant: vault, search, chat history,
// Anthropic provider, extraction pipeline.
func openAssistant(c *cli.Context) (*mycelia.Assistant, error) {
	configOpts := []ai.ConfigOption{ai.WithToken(c.String("token"))}
	if model := c.String("model"); model != "" {
		configOpts = append(configOpts, ai.WithModel(model))
	}

	provider, err := anthropic.NewProvider(ai.NewConfig(configOpts...))
	if err != nil {
		return nil, err
	}

	return mycelia.NewAssistant(c.String("vault"), provider,
		mycelia.WithJournalFormat(c.String("journal-format")),
		mycelia.WithPerspective(ingestion.Perspective(c.String("perspective"))))
}

// debugMonitor prints how a query moves through the index.
type debugMonitor struct {
	out   *os.File
	query string
}

var _ search.Monitor = (*debugMonitor)(nil)

func (m *debugMonitor) Start(query string) {
	m.query = query
}

func (m *debugMonitor) AfterTokenize(terms []string) {
	fmt.Fprintf(m.out, "query %q -> terms %v\n", m.query, terms)
}

func (m *debugMonitor) AfterCandidates(paths iter.Seq[string]) {
	count := 0
	for range paths {
		count++
	}
	fmt.Fprintf(m.out, "candidate documents: %d\n", count)
}

func (m *debugMonitor) Finish(results []search.Result) {
	fmt.Fprintf(m.out, "scored results: %d\n", len(results))
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
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
