package site

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/makesite/internal/config"
	"git.home.luguber.info/inful/makesite/internal/content"
	"git.home.luguber.info/inful/makesite/internal/logfields"
	"git.home.luguber.info/inful/makesite/internal/metrics"
	"git.home.luguber.info/inful/makesite/internal/templates"
)

// Build stages, in execution order.
const (
	StageReset      = "reset"
	StageLayouts    = "layouts"
	StagePages      = "pages"
	StagePosts      = "posts"
	StageIndex      = "index"
	StageCategories = "categories"
	StageFeed       = "feed"
)

// Default parameter keys.
const (
	ParamBasePath    = "base_path"
	ParamTitle       = "title"
	ParamSiteURL     = "site_url"
	ParamCurrentYear = "current_year"
)

// Report summarises a finished build.
type Report struct {
	BuildID    string
	Pages      int
	Posts      int
	Categories int
	Lists      int
	Duration   time.Duration
}

// Generator runs full builds for one configuration.
type Generator struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock overrides the clock used for current_year.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator creates a Generator for cfg.
func NewGenerator(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// DefaultParams returns the parameters every template sees. Configured extra params
// are layered below the site defaults.
func (g *Generator) DefaultParams() templates.Params {
	return templates.Merge(g.cfg.Params, map[string]any{
		ParamBasePath:    g.cfg.Site.BasePath,
		ParamTitle:       g.cfg.Site.Title,
		ParamSiteURL:     g.cfg.Site.SiteURL,
		ParamCurrentYear: g.now().Year(),
	})
}

// Generate runs one full build. The context is checked between stages.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{BuildID: uuid.NewString()}
	logger := g.logger.With(logfields.BuildID(report.BuildID))
	builder := NewBuilder(logger, g.recorder)

	err := g.run(ctx, logger, builder, report)
	report.Duration = time.Since(start)
	g.recorder.ObserveBuildDuration(report.Duration)

	switch {
	case err == nil:
		g.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		logger.Info("Build completed",
			logfields.Count(report.Pages+report.Posts+report.Lists),
			logfields.Duration(report.Duration))
	case ctx.Err() != nil:
		g.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		logger.Warn("Build canceled", logfields.Error(err))
	default:
		g.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		logger.Error("Build failed", logfields.Error(err))
	}
	return report, err
}

func (g *Generator) run(ctx context.Context, logger *slog.Logger, b *Builder, report *Report) error {
	paths := g.cfg.Paths
	out := paths.Output

	var (
		params  templates.Params
		layouts *Layouts
		posts   []*content.Item
		groups  *Grouping
	)

	stages := []struct {
		name string
		fn   func() error
	}{
		{StageReset, func() error {
			if err := g.cfg.Validate(); err != nil {
				return err
			}
			return ResetOutput(paths.Static, out)
		}},
		{StageLayouts, func() error {
			params = g.DefaultParams()
			loaded, err := b.LoadLayouts(paths.Layout)
			if err != nil {
				return err
			}
			layouts = loaded.Composed()
			return nil
		}},
		{StagePages, func() error {
			pages, err := b.MakePages(metrics.OutputPage,
				filepath.Join(paths.Content, "[!_]*.html"),
				filepath.Join(out, "{{ slug }}", "index.html"),
				layouts.Page, params)
			report.Pages = len(pages)
			return err
		}},
		{StagePosts, func() error {
			var err error
			posts, err = b.MakePages(metrics.OutputPost,
				filepath.Join(paths.Content, "*", "*.html"),
				filepath.Join(out, "{{ category }}", "{{ slug }}", "index.html"),
				layouts.Post, params)
			report.Posts = len(posts)
			return err
		}},
		{StageIndex, func() error {
			if err := b.MakeList(metrics.OutputList, posts,
				filepath.Join(out, "index.html"),
				layouts.List, layouts.Item, params); err != nil {
				return err
			}
			report.Lists++
			return nil
		}},
		{StageCategories, func() error {
			groups = ByCategory(posts)
			for _, category := range groups.Categories() {
				if err := b.MakeList(metrics.OutputList, groups.Items(category),
					filepath.Join(out, "{{ category }}", "index.html"),
					layouts.List, layouts.Item,
					params.With(content.KeyCategory, category)); err != nil {
					return err
				}
				report.Lists++
			}
			report.Categories = len(groups.Categories())
			return nil
		}},
		{StageFeed, func() error {
			return b.MakeList(metrics.OutputFeed, posts,
				filepath.Join(out, "rss.xml"),
				layouts.Feed, layouts.FeedItem, params)
		}},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		stageStart := time.Now()
		if err := stage.fn(); err != nil {
			return err
		}
		elapsed := time.Since(stageStart)
		g.recorder.ObserveStageDuration(stage.name, elapsed)
		logger.Debug("Stage completed", logfields.Stage(stage.name), logfields.Duration(elapsed))
	}
	return nil
}
