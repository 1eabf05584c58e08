package site

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/makesite/internal/content"
	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
	"git.home.luguber.info/inful/makesite/internal/logfields"
	"git.home.luguber.info/inful/makesite/internal/templates"
)

// Layout file names expected in the layout directory.
const (
	PageLayoutFile     = "page.html"
	PostLayoutFile     = "post.html"
	ListLayoutFile     = "list.html"
	ItemLayoutFile     = "item.html"
	FeedLayoutFile     = "feed.xml"
	FeedItemLayoutFile = "item.xml"
)

// Layouts holds the templates of one build.
type Layouts struct {
	Page     string
	Post     string
	List     string
	Item     string
	Feed     string
	FeedItem string
}

// LoadLayouts reads every layout from dir.
func LoadLayouts(dir string) (*Layouts, error) {
	return defaultBuilder.LoadLayouts(dir)
}

// LoadLayouts is the package-level LoadLayouts logging through the builder's logger.
func (b *Builder) LoadLayouts(dir string) (*Layouts, error) {
	l := &Layouts{}
	files := []struct {
		name string
		dst  *string
	}{
		{PageLayoutFile, &l.Page},
		{PostLayoutFile, &l.Post},
		{ListLayoutFile, &l.List},
		{ItemLayoutFile, &l.Item},
		{FeedLayoutFile, &l.Feed},
		{FeedItemLayoutFile, &l.FeedItem},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		text, err := readLayout(path)
		if err != nil {
			return nil, err
		}
		b.logger.Debug("Loaded layout", logfields.Layout(path), logfields.Count(len(text)))
		*f.dst = text
	}
	return l, nil
}

func readLayout(path string) (string, error) {
	// #nosec G304 -- layout paths come from the configured layout directory.
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ferrors.TemplateReadError("read layout").
			WithCause(err).
			WithContext("layout", path).
			Build()
	}
	return string(data), nil
}

// Compose wraps sub inside the page shell by rendering page with sub's raw text as
// its only parameter. Every other placeholder, in page or sub, is left for the render
// of each page, so one level of nesting is all it supports.
func Compose(page, sub string) string {
	return templates.Render(page, templates.Params{content.KeyContent: sub})
}

// Composed returns a copy whose post and list layouts are wrapped in the page shell.
func (l *Layouts) Composed() *Layouts {
	c := *l
	c.Post = Compose(l.Page, l.Post)
	c.List = Compose(l.Page, l.List)
	return &c
}
