// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/depwalk/internal/config"
	"github.com/invowk/depwalk/pkg/nodemod"
)

type (
	// App wires CLI services and shared state. Every command handler receives the
	// App and writes through its stdout/stderr so tests can capture output.
	App struct {
		Config config.Provider
		Walker WalkService

		stdout io.Writer
		stderr io.Writer

		// Set by persistent flags.
		verbose bool
		cfgFile string

		// Loaded before any subcommand runs.
		cfg        *config.Config
		configPath string
	}

	// Dependencies defines the injection points for building an App.
	// Nil fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Walker WalkService
		Stdout io.Writer
		Stderr io.Writer
	}

	// WalkService walks the dependency tree of a root package.
	WalkService interface {
		Walk(ctx context.Context, root string, opts nodemod.Options, logger *log.Logger) ([]nodemod.Module, error)
	}

	nodemodWalkService struct{}

	// resolvingProvider remembers which file the production provider loaded.
	resolvingProvider struct {
		app *App
	}
)

// NewApp creates an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		Walker: deps.Walker,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = &resolvingProvider{app: app}
	}
	if app.Walker == nil {
		app.Walker = nodemodWalkService{}
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// Walk creates a walker for root and walks it once.
func (nodemodWalkService) Walk(ctx context.Context, root string, opts nodemod.Options, logger *log.Logger) ([]nodemod.Module, error) {
	w, err := nodemod.NewWalker(root, nodemod.WithOptions(opts), nodemod.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return w.WalkTree(ctx)
}

func (p *resolvingProvider) Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error) {
	cfg, path, err := config.Resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	p.app.configPath = path
	return cfg, nil
}

// loadConfig loads the configuration selected by --config and applies its UI settings.
func (a *App) loadConfig(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err, Verbose: a.verbose}
	}
	a.cfg = cfg

	// The flag only ever turns verbosity on.
	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}
	return nil
}

// logger returns the logger handed to the walker.
func (a *App) logger() *log.Logger {
	level := log.WarnLevel
	if a.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}
