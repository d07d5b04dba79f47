package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/bookit/internal/config"
	"git.home.luguber.info/inful/bookit/internal/pipeline"
	"git.home.luguber.info/inful/bookit/internal/storage"
	"git.home.luguber.info/inful/bookit/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	NoLint bool `name:"nolint" help:"Skip the post-build source lint pass"`
	Watch  bool `short:"w" help:"Keep running and rebuild whenever the source tree changes"`
}

func (b *BuildCmd) Run(_ *Global) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	cfg, err := config.Load(root, config.Options{NoLint: b.NoLint})
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, storage.NewFSStore())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := p.Build(ctx); err != nil {
		return err
	}
	slog.Info("book built successfully")

	if b.Watch {
		return watch.Run(ctx, cfg.SrcPath, func(ctx context.Context) error {
			_, err := p.Build(ctx)
			return err
		})
	}
	return nil
}
