package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/makesite/internal/config"
	"git.home.luguber.info/inful/makesite/internal/logfields"
	"git.home.luguber.info/inful/makesite/internal/metrics"
	"git.home.luguber.info/inful/makesite/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory (overrides paths.output)" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write build metrics in Prometheus text format to this file" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Paths.Output = b.Output
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = RunBuild(ctx, g.Logger, cfg, b.MetricsFile)
	return err
}

// RunBuild runs one full build and, when metricsFile is set, exports the build's
// metrics even if the build failed.
func RunBuild(ctx context.Context, logger *slog.Logger, cfg *config.Config, metricsFile string) (*site.Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Starting site build",
		logfields.Path(cfg.Paths.Content),
		logfields.Dest(cfg.Paths.Output))

	reg := prom.NewRegistry()
	gen := site.NewGenerator(cfg,
		site.WithLogger(logger),
		site.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	report, err := gen.Generate(ctx)

	if metricsFile != "" {
		if werr := metrics.WriteTextfile(metricsFile, reg); werr != nil {
			logger.Warn("Failed to write metrics file", logfields.Path(metricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return report, fmt.Errorf("build: %w", err)
	}

	logger.Info("Site written",
		logfields.Dest(cfg.Paths.Output),
		slog.Int("pages", report.Pages),
		slog.Int("posts", report.Posts),
		slog.Int("categories", report.Categories),
		logfields.Duration(report.Duration))
	return report, nil
}
