package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/picko-ai/picko"
	"github.com/picko-ai/picko/api"
	"github.com/picko-ai/picko/core"
	"github.com/picko-ai/picko/recommend"
	"github.com/urfave/cli/v2"
)

func openDatabase(c *cli.Context) (*picko.Database, error) {
	cfg, err := configFrom(c)
	if err != nil {
		return nil, err
	}
	db, err := picko.OpenFromConfig(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func recommendCommand(c *cli.Context) error {
	tasks := c.Args().Slice()
	if len(tasks) == 0 {
		return errors.New("at least one task is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []recommend.Option
	if c.Bool("explain") {
		opts = append(opts, recommend.WithMonitor(newExplainMonitor(c.App.ErrWriter)))
	}
	recommender, err := db.NewRecommender(opts...)
	if err != nil {
		return err
	}
	defer recommender.Release()

	batch := make([][]*core.Tool, len(tasks))
	if c.Bool("explain") {
		// Sequential so the stage output of different tasks does not interleave.
		for i, task := range tasks {
			batch[i] = recommender.Recommend(c.Context, task)
		}
	} else {
		batch = recommender.RecommendBatch(c.Context, tasks)
	}

	return printJSON(c, api.NewRecommendationResponse(tasks, batch))
}

func serveCommand(c *cli.Context) error {
	cfg, err := configFrom(c)
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	recommender, err := db.NewRecommender()
	if err != nil {
		return err
	}
	defer recommender.Release()

	recorder, err := db.NewRecorder()
	if err != nil {
		return err
	}

	server, err := api.NewServer(recommender, recorder,
		api.WithPinger(db),
		api.WithRequestTimeout(cfg.Server.RequestTimeout),
		api.WithCORSOrigins(cfg.Server.CORSOrigins...),
		api.WithRateLimit(cfg.Server.RateLimitRequests, cfg.Server.RateLimitWindow),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx, addr, cfg.Server.ShutdownTimeout)
}

func addToolCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	tool := &core.Tool{
		Id:                   core.ID(c.String("id")),
		Name:                 c.String("name"),
		Category:             c.String("category"),
		SecondaryCategory:    c.String("secondary-category"),
		Strength:             c.String("strength"),
		StrengthLocalized:    c.String("strength-kr"),
		Description:          c.String("description"),
		DescriptionLocalized: c.String("description-kr"),
		Free:                 c.Bool("free"),
		Link:                 c.String("link"),
	}

	added, err := db.ToolRepository().AddTools(c.Context, tool)
	if err != nil {
		return fmt.Errorf("failed to add tool: %w", err)
	}
	fmt.Fprintln(c.App.Writer, added[0].Id)
	return nil
}

func favoriteCommand(c *cli.Context) error {
	return withRecorder(c, func(ctx context.Context, r api.Recorder, session string) (*core.Interaction, error) {
		return r.SaveFavorite(ctx, session, core.ID(c.String("tool-id")), c.String("tool-name"), !c.Bool("unfavorite"))
	})
}

func rateCommand(c *cli.Context) error {
	return withRecorder(c, func(ctx context.Context, r api.Recorder, session string) (*core.Interaction, error) {
		return r.SaveRating(ctx, session, core.ID(c.String("tool-id")), c.String("tool-name"), c.Int("rating"))
	})
}

func withRecorder(c *cli.Context, save func(context.Context, api.Recorder, string) (*core.Interaction, error)) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := db.NewRecorder()
	if err != nil {
		return err
	}

	session := c.String("session")
	if session == "" {
		session = uuid.NewString()
	}

	saved, err := save(c.Context, rec, session)
	if err != nil {
		return err
	}
	return printJSON(c, api.NewInteractionResponse(saved))
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
