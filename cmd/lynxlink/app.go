// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/kafitra/lynxlink/internal/config"
)

type (
	// App holds the services shared by all commands.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies configures NewApp. Nil fields get production defaults.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration from explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// globalFlags are the persistent flags shared by every command.
	globalFlags struct {
		verbose    bool
		configPath string
	}

	// session is the per-invocation view a command works with: the loaded
	// configuration, the effective verbosity and a logger built from it.
	session struct {
		cfg     *config.Config
		verbose bool
		logger  *log.Logger
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// newSession loads configuration for projectRoot and applies the global
// flags on top of it.
func (a *App) newSession(ctx context.Context, flags *globalFlags, projectRoot string) (*session, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: flags.configPath,
		ProjectRoot:    projectRoot,
	})
	if err != nil {
		return nil, err
	}

	verbose := flags.verbose || cfg.UI.Verbose
	return &session{
		cfg:     cfg,
		verbose: verbose,
		logger:  newLogger(a.stderr, verbose),
	}, nil
}

// newLogger builds the CLI logger: debug output with --verbose, warnings
// and errors otherwise.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}
