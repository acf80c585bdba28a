// Copyright 2025 The Picko Authors
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
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/picko-ai/picko/config"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "picko",
		Usage: "Recommend AI tools for everyday tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides the config file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the tool store; overrides the config file",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Storage backend (badger, sqlite); overrides the config file",
			},
			&cli.BoolFlag{
				Name:  "no-ai",
				Usage: "Do not consult the language model",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "recommend",
				Usage:     "Recommend tools for one or more tasks and print JSON",
				ArgsUsage: "<task> [task...]",
				Action:    recommendCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print each pipeline stage to stderr",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address; overrides the config file",
					},
				},
			},
			{
				Name:   "add-tool",
				Usage:  "Add or replace a tool in the catalog",
				Action: addToolCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "Tool id (derived from name and link when empty)"},
					&cli.StringFlag{Name: "name", Usage: "Tool name", Required: true},
					&cli.StringFlag{Name: "category", Usage: "Localized category"},
					&cli.StringFlag{Name: "secondary-category", Usage: "Catalog category of the source listing"},
					&cli.StringFlag{Name: "strength", Usage: "Strength"},
					&cli.StringFlag{Name: "strength-kr", Usage: "Localized strength"},
					&cli.StringFlag{Name: "description", Usage: "Description"},
					&cli.StringFlag{Name: "description-kr", Usage: "Localized description"},
					&cli.BoolFlag{Name: "free", Usage: "The tool has a free plan"},
					&cli.StringFlag{Name: "link", Usage: "Tool homepage"},
				},
			},
			{
				Name:   "favorite",
				Usage:  "Favorite or unfavorite a tool",
				Action: favoriteCommand,
				Flags: append(feedbackFlags(),
					&cli.BoolFlag{Name: "unfavorite", Usage: "Remove the favorite instead"},
				),
			},
			{
				Name:   "rate",
				Usage:  "Rate a tool from 1 to 5",
				Action: rateCommand,
				Flags: append(feedbackFlags(),
					&cli.IntFlag{Name: "rating", Aliases: []string{"r"}, Usage: "Rating from 1 to 5", Required: true},
				),
			},
		},
	}
}

func feedbackFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Usage: "Session id (a new one is created when empty)"},
		&cli.StringFlag{Name: "tool-id", Usage: "Tool id", Required: true},
		&cli.StringFlag{Name: "tool-name", Usage: "Tool name"},
	}
}

// setup loads the configuration, applies flag overrides and installs the logger.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("db") {
		cfg.Storage.Path = c.String("db")
	}
	if c.IsSet("backend") {
		cfg.Storage.Backend = c.String("backend")
	}
	if c.Bool("no-ai") {
		cfg.AI.Enabled = false
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = strings.ToLower(c.String("log-level"))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := setupLogger(cfg.Logging); err != nil {
		return err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func setupLogger(cfg config.LoggingConfig) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", cfg.Level)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

func configFrom(c *cli.Context) (*config.Config, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}
