package site

import (
	"log/slog"
	"sort"
	"strings"

	"git.home.luguber.info/inful/makesite/internal/content"
	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
	"git.home.luguber.info/inful/makesite/internal/logfields"
	"git.home.luguber.info/inful/makesite/internal/metrics"
	"git.home.luguber.info/inful/makesite/internal/templates"
)

// Builder renders pages and lists, logging and counting every file it writes.
type Builder struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewBuilder returns a Builder. A nil logger means slog.Default and a nil recorder
// records nothing.
func NewBuilder(logger *slog.Logger, recorder metrics.Recorder) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Builder{logger: logger, recorder: recorder}
}

var defaultBuilder = NewBuilder(nil, nil)

// MakePages renders every file matching src through layout and writes it to the
// path rendered from dst. It returns the items sorted by date, newest first.
func MakePages(src, dst, layout string, params templates.Params) ([]*content.Item, error) {
	return defaultBuilder.MakePages(metrics.OutputPage, src, dst, layout, params)
}

// MakeList renders items through itemLayout, joins the fragments into the content
// placeholder and writes listLayout to the path rendered from dst. Items are used in
// the order given.
func MakeList(items []*content.Item, dst, listLayout, itemLayout string, params templates.Params) error {
	return defaultBuilder.MakeList(metrics.OutputList, items, dst, listLayout, itemLayout, params)
}

// MakePages is the package-level MakePages with the written files counted as kind.
func (b *Builder) MakePages(kind metrics.OutputKind, src, dst, layout string, params templates.Params) ([]*content.Item, error) {
	paths, err := content.Glob(src)
	if err != nil {
		return nil, ferrors.FileAccessError("expand source pattern").
			WithCause(err).
			WithContext("pattern", src).
			Build()
	}
	b.logger.Debug("Expanded source pattern", logfields.Pattern(src), logfields.Count(len(paths)))

	items := make([]*content.Item, 0, len(paths))
	for _, path := range paths {
		item, err := content.Read(path)
		if err != nil {
			return nil, err
		}

		// Each item renders against its own layer so no field outlives its item.
		itemParams := templates.Merge(params, item.Params())
		dstPath := templates.Render(dst, itemParams)
		if err := templates.WriteOutput(dstPath, templates.Render(layout, itemParams)); err != nil {
			return nil, err
		}

		b.recorder.IncFilesWritten(kind)
		b.logger.Debug("Rendered page",
			logfields.Path(item.SourcePath),
			logfields.Dest(dstPath),
			logfields.Category(item.Category),
			logfields.Slug(item.Slug))
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
	return items, nil
}

// MakeList is the package-level MakeList with the written file counted as kind.
func (b *Builder) MakeList(kind metrics.OutputKind, items []*content.Item, dst, listLayout, itemLayout string, params templates.Params) error {
	var fragments strings.Builder
	for _, item := range items {
		fragments.WriteString(templates.Render(itemLayout, templates.Merge(params, item.Params())))
	}

	listParams := params.With(content.KeyContent, fragments.String())
	dstPath := templates.Render(dst, listParams)
	if err := templates.WriteOutput(dstPath, templates.Render(listLayout, listParams)); err != nil {
		return err
	}

	b.recorder.IncFilesWritten(kind)
	b.logger.Debug("Rendered list", logfields.Dest(dstPath), logfields.Count(len(items)))
	return nil
}
