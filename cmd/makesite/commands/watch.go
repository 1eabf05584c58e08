package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/makesite/internal/config"
	"git.home.luguber.info/inful/makesite/internal/site"
	"git.home.luguber.info/inful/makesite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Interval time.Duration `help:"Also rebuild on this interval (overrides watch.interval, 0 disables)"`
	Debounce time.Duration `help:"Quiet period after a change before rebuilding (overrides watch.debounce)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if w.Interval > 0 {
		cfg.Watch.Interval = w.Interval
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return RunWatch(ctx, g.Logger, cfg)
}

// RunWatch rebuilds the site on input changes until ctx is done.
func RunWatch(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	gen := site.NewGenerator(cfg, site.WithLogger(logger))
	w := watch.New(func(ctx context.Context) error {
		_, err := gen.Generate(ctx)
		return err
	}, watch.Options{
		Dirs:     []string{cfg.Paths.Content, cfg.Paths.Layout, cfg.Paths.Static},
		Exclude:  []string{cfg.Paths.Output},
		Debounce: cfg.Watch.Debounce,
		Interval: cfg.Watch.Interval,
		Logger:   logger,
	})
	return w.Run(ctx)
}
