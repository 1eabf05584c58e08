package site

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/makesite/internal/config"
	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
	"git.home.luguber.info/inful/makesite/internal/metrics"
	helpers "git.home.luguber.info/inful/makesite/internal/testutil/testutils"
)

func fixtureConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Paths = config.PathsConfig{
		Content: filepath.Join(root, "content"),
		Layout:  filepath.Join(root, "layout"),
		Static:  filepath.Join(root, "static"),
		Output:  filepath.Join(root, "_site"),
	}
	return cfg
}

func fixtureSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	helpers.WriteTree(t, root, helpers.DefaultLayouts)
	helpers.WriteTree(t, root, map[string]string{
		"static/css/style.css": "body{}",
		"content/_draft.html":  "never rendered",
	})
	helpers.WriteFileAt(t, filepath.Join(root, "content", "about.html"), "<p>About me</p>", day("2021-01-01"))
	helpers.WriteFileAt(t, filepath.Join(root, "content", "tech", "hello-world.html"), "<p>Hello</p>", day("2021-05-01"))
	helpers.WriteFileAt(t, filepath.Join(root, "content", "tech", "go-tips.html"), "<p>Tips</p>", day("2021-06-01"))
	helpers.WriteFileAt(t, filepath.Join(root, "content", "life", "moving-day.html"), "<p>Boxes</p>", day("2021-02-01"))
	return root
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
}

func TestGenerate(t *testing.T) {
	root := fixtureSite(t)
	rec := newCountingRecorder()

	report, err := NewGenerator(fixtureConfig(root), WithRecorder(rec), WithClock(fixedClock)).
		Generate(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.BuildID)
	assert.Equal(t, 1, report.Pages)
	assert.Equal(t, 3, report.Posts)
	assert.Equal(t, 2, report.Categories)
	assert.Equal(t, 3, report.Lists)

	fa := helpers.NewFileAssertions(t, filepath.Join(root, "_site"))
	fa.AssertFileEquals("css/style.css", "body{}").
		AssertFileNotExists("_draft/index.html").
		AssertFileEquals("about/index.html",
			"<title>About - http://localhost:8000</title><main><p>About me</p></main>\n").
		AssertFileEquals("tech/hello-world/index.html",
			"<title>Hello World - http://localhost:8000</title><main>"+
				"<article><h1>Hello World</h1><time>2021-05-01</time><p>Hello</p></article></main>\n").
		AssertFileEquals("index.html",
			"<title>Shobute - http://localhost:8000</title><main><ul>"+
				"<li><a href=\"/tech/go-tips/\">Go Tips</a> 2021-06-01</li>"+
				"<li><a href=\"/tech/hello-world/\">Hello World</a> 2021-05-01</li>"+
				"<li><a href=\"/life/moving-day/\">Moving Day</a> 2021-02-01</li>"+
				"</ul></main>\n").
		AssertFileEquals("tech/index.html",
			"<title>Shobute - http://localhost:8000</title><main><ul>"+
				"<li><a href=\"/tech/go-tips/\">Go Tips</a> 2021-06-01</li>"+
				"<li><a href=\"/tech/hello-world/\">Hello World</a> 2021-05-01</li>"+
				"</ul></main>\n").
		AssertFileContains("life/index.html", "Moving Day").
		AssertFileEquals("rss.xml",
			"<rss><channel><title>Shobute</title>"+
				"<item><title>Go Tips</title><link>http://localhost:8000/tech/go-tips/</link></item>"+
				"<item><title>Hello World</title><link>http://localhost:8000/tech/hello-world/</link></item>"+
				"<item><title>Moving Day</title><link>http://localhost:8000/life/moving-day/</link></item>"+
				"</channel></rss>\n")

	assert.Equal(t, []string{
		StageReset, StageLayouts, StagePages, StagePosts, StageIndex, StageCategories, StageFeed,
	}, rec.stages)
	assert.Equal(t, 1, rec.outcomes[metrics.BuildOutcomeSuccess])
	assert.Equal(t, 1, rec.files[metrics.OutputPage])
	assert.Equal(t, 3, rec.files[metrics.OutputPost])
	assert.Equal(t, 3, rec.files[metrics.OutputList])
	assert.Equal(t, 1, rec.files[metrics.OutputFeed])
}

func TestGenerate_Idempotent(t *testing.T) {
	root := fixtureSite(t)
	gen := NewGenerator(fixtureConfig(root), WithClock(fixedClock))
	out := helpers.NewFileAssertions(t, filepath.Join(root, "_site"))

	_, err := gen.Generate(context.Background())
	require.NoError(t, err)
	first := out.SnapshotTree()

	_, err = gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, out.SnapshotTree())
}

func TestGenerate_EmptyContent(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, helpers.DefaultLayouts)

	report, err := NewGenerator(fixtureConfig(root)).Generate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Posts)
	assert.Zero(t, report.Categories)

	helpers.NewFileAssertions(t, filepath.Join(root, "_site")).
		AssertFileEquals("index.html", "<title>Shobute - http://localhost:8000</title><main><ul></ul></main>\n").
		AssertFileEquals("rss.xml", "<rss><channel><title>Shobute</title></channel></rss>\n")
}

func TestGenerate_ConfiguredParams(t *testing.T) {
	root := fixtureSite(t)
	cfg := fixtureConfig(root)
	cfg.Site.BasePath = "/blog"
	cfg.Site.Title = "Notes"
	cfg.Params = map[string]any{"title": "ignored", "author": "Jane"}

	gen := NewGenerator(cfg, WithClock(fixedClock))
	params := gen.DefaultParams()
	assert.Equal(t, "Notes", params[ParamTitle])
	assert.Equal(t, "Jane", params["author"])
	assert.Equal(t, 2024, params[ParamCurrentYear])

	_, err := gen.Generate(context.Background())
	require.NoError(t, err)
	helpers.NewFileAssertions(t, filepath.Join(root, "_site")).
		AssertFileContains("index.html", `<a href="/blog/tech/go-tips/">`)
}

func TestGenerate_MissingLayout(t *testing.T) {
	root := t.TempDir()
	rec := newCountingRecorder()

	_, err := NewGenerator(fixtureConfig(root), WithRecorder(rec)).Generate(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryTemplateRead))
	assert.Equal(t, 1, rec.outcomes[metrics.BuildOutcomeFailed])
}

func TestGenerate_Canceled(t *testing.T) {
	root := fixtureSite(t)
	rec := newCountingRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(fixtureConfig(root), WithRecorder(rec)).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, rec.outcomes[metrics.BuildOutcomeCanceled])
	helpers.NewFileAssertions(t, root).AssertFileNotExists("_site")
}

func TestGenerate_RefusesOutputOverInputs(t *testing.T) {
	root := fixtureSite(t)
	cfg := fixtureConfig(root)
	cfg.Paths.Output = root

	_, err := NewGenerator(cfg).Generate(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	helpers.NewFileAssertions(t, root).
		AssertFileExists("content/about.html").
		AssertFileExists("layout/page.html").
		AssertFileExists("static/css/style.css")
}
