package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/makesite/internal/config"
	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
)

// logLevelEnv overrides the configured log level; -v still wins.
const logLevelEnv = "MAKESITE_LOG_LEVEL"

// Global context passed to subcommands. Logger is set once flags are parsed and
// replaced when a configuration file changes the log settings.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (optional)" default:"makesite.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build      BuildCmd   `cmd:"" default:"withargs" help:"Build the site (default command)"`
	Watch      WatchCmd   `cmd:"" help:"Build, then rebuild whenever inputs change"`
	Init       InitCmd    `cmd:"" help:"Write an example configuration file"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print version information"`

	stderr io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	if _, err := config.ValidateLogFormat(c.LogFormat); err != nil {
		return ferrors.ValidationError("invalid --log-format").
			WithCause(err).
			WithContext("value", c.LogFormat).
			Build()
	}
	g.Logger = c.configureLogging(nil)
	return nil
}

// loadConfig loads the configuration file and reapplies logging with its settings.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = c.configureLogging(cfg)
	return cfg, nil
}

// configureLogging installs the default slog logger. Flags override the environment,
// which overrides the configuration file.
func (c *CLI) configureLogging(cfg *config.Config) *slog.Logger {
	level := config.LogLevelInfo
	format := config.LogFormatText
	if cfg != nil {
		level = cfg.Logging.Level
		format = cfg.Logging.Format
	}
	level = parseLogLevel(c.Verbose, level)
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}

	out := c.stderr
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level.SlogLevel()}

	var handler slog.Handler = slog.NewTextHandler(out, opts)
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel resolves the effective level from the verbose flag, the
// MAKESITE_LOG_LEVEL environment variable and the configured fallback.
func parseLogLevel(verbose bool, fallback config.LogLevel) config.LogLevel {
	if verbose {
		return config.LogLevelDebug
	}
	if env := os.Getenv(logLevelEnv); env != "" {
		return config.NormalizeLogLevel(env)
	}
	if fallback == "" {
		return config.LogLevelInfo
	}
	return fallback
}
