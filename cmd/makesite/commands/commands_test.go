package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/makesite/internal/config"
	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
	helpers "git.home.luguber.info/inful/makesite/internal/testutil/testutils"
)

func newParser(t *testing.T, cli *CLI, g *Global) *kong.Kong {
	t.Helper()
	parser, err := kong.New(cli, kong.Name("makesite"), kong.Vars{"version": "test"}, kong.Bind(g))
	require.NoError(t, err)
	return parser
}

// projectFixture writes a small site into a temp dir and makes it the working directory.
func projectFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	helpers.WriteTree(t, root, helpers.DefaultLayouts)
	helpers.WriteTree(t, root, map[string]string{
		"content/about.html":            "<p>About</p>",
		"content/tech/hello-world.html": "<p>Hello</p>",
		"static/robots.txt":             "User-agent: *",
	})
	t.Chdir(root)
	return root
}

func TestParse_DefaultCommandIsBuild(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	cli := &CLI{}
	g := &Global{}
	ctx, err := newParser(t, cli, g).Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "build", ctx.Command())
	assert.NotNil(t, g.Logger)
	assert.Equal(t, "makesite.yaml", filepath.Base(cli.Config))
}

func TestParse_Flags(t *testing.T) {
	cli := &CLI{}
	ctx, err := newParser(t, cli, &Global{}).Parse([]string{"-v", "--log-format", "json", "watch", "--interval", "1m"})
	require.NoError(t, err)
	assert.Equal(t, "watch", ctx.Command())
	assert.True(t, cli.Verbose)
	assert.Equal(t, time.Minute, cli.Watch.Interval)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	cli := &CLI{}
	_, err := newParser(t, cli, &Global{}).Parse([]string{"--log-format", "xml"})
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	t.Setenv(logLevelEnv, "")
	assert.Equal(t, config.LogLevelInfo, parseLogLevel(false, ""))
	assert.Equal(t, config.LogLevelWarn, parseLogLevel(false, config.LogLevelWarn))
	assert.Equal(t, config.LogLevelDebug, parseLogLevel(true, config.LogLevelError))

	t.Setenv(logLevelEnv, "ERROR")
	assert.Equal(t, config.LogLevelError, parseLogLevel(false, config.LogLevelWarn))
	assert.Equal(t, config.LogLevelDebug, parseLogLevel(true, config.LogLevelWarn))
}

func TestConfigureLogging_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Setenv(logLevelEnv, "")

	var buf bytes.Buffer
	cli := &CLI{LogFormat: "json", stderr: &buf}
	logger := cli.configureLogging(nil)

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])
}

func TestRunBuild(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	root := projectFixture(t)

	metricsFile := filepath.Join(root, "metrics", "makesite.prom")
	require.NoError(t, os.MkdirAll(filepath.Dir(metricsFile), 0o750))

	report, err := RunBuild(context.Background(), nil, config.Default(), metricsFile)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Posts)

	helpers.NewFileAssertions(t, root).
		AssertFileExists("_site/about/index.html").
		AssertFileExists("_site/tech/hello-world/index.html").
		AssertFileExists("_site/tech/index.html").
		AssertFileExists("_site/index.html").
		AssertFileExists("_site/rss.xml").
		AssertFileEquals("_site/robots.txt", "User-agent: *").
		AssertFileContains("metrics/makesite.prom", `makesite_build_outcomes_total{outcome="success"} 1`)
}

func TestBuildCmd_OutputOverride(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	root := t.TempDir()
	helpers.WriteTree(t, root, helpers.DefaultLayouts)
	t.Chdir(root)

	cli := &CLI{}
	g := &Global{}
	ctx, err := newParser(t, cli, g).Parse([]string{"build", "-o", "public"})
	require.NoError(t, err)
	require.NoError(t, ctx.Run(g, cli))

	helpers.NewFileAssertions(t, root).
		AssertFileExists("public/index.html").
		AssertFileNotExists("_site")
}

func TestBuildCmd_RefusesOutputOverInputs(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	for _, output := range []string{"static", ".", "layout", "content/out"} {
		t.Run(output, func(t *testing.T) {
			root := projectFixture(t)

			cli := &CLI{}
			g := &Global{}
			ctx, err := newParser(t, cli, g).Parse([]string{"build", "-o", output})
			require.NoError(t, err)

			err = ctx.Run(g, cli)
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
			assert.Equal(t, 2, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

			helpers.NewFileAssertions(t, root).
				AssertFileEquals("static/robots.txt", "User-agent: *").
				AssertFileExists("content/about.html").
				AssertFileExists("layout/page.html")
		})
	}
}

func TestRunBuild_MissingLayouts(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Chdir(t.TempDir())

	_, err := RunBuild(context.Background(), nil, config.Default(), "")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryTemplateRead))
	assert.Equal(t, 11, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "makesite.yaml")

	require.NoError(t, RunInit(path, false))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Your Name", cfg.Params["author"])

	err = RunInit(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, RunInit(path, true))
}
