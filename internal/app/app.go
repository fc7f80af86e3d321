package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/mixrng/internal/cli"
	"github.com/agbru/mixrng/internal/config"
	"github.com/agbru/mixrng/internal/engine"
	apperrors "github.com/agbru/mixrng/internal/errors"
	"github.com/agbru/mixrng/internal/logging"
	"github.com/agbru/mixrng/internal/metrics"
	"github.com/agbru/mixrng/internal/mixer"
	"github.com/agbru/mixrng/internal/seed"
	"github.com/agbru/mixrng/internal/ui"
)

// Application represents the mixrng application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *mixer.Registry
	Seeds     seed.Source
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets the mixer registry the -mixer flag selects from.
func WithRegistry(r *mixer.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithSeedSource sets the source used when no seed is given explicitly.
func WithSeedSource(s seed.Source) AppOption {
	return func(a *Application) { a.Seeds = s }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = mixer.NewDefaultRegistry()
	}
	if app.Seeds == nil {
		app.Seeds = seed.Global()
	}

	programName := "mixrng"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.List(), engine.AggregatorNames())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	return a.runGenerate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	choices := cli.Choices{Mixers: a.Registry.List(), Aggregators: engine.AggregatorNames()}
	if err := cli.GenerateCompletion(out, a.Config.Completion, choices); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runGenerate performs one run and prints its result.
func (a *Application) runGenerate(ctx context.Context, out io.Writer) int {
	var collector *metrics.Collector
	if a.Config.MetricsFile != "" {
		collector = metrics.NewCollector()
	}

	opts, err := engine.SelectOptions(a.Registry, a.Config.Mixer, a.Config.Aggregator)
	if err != nil {
		a.printError(err)
		return apperrors.ExitCodeFor(err)
	}
	opts = append(opts,
		engine.WithLogger(a.newLogger()),
		engine.WithMetrics(collector),
		engine.WithWorkerLimit(a.Config.MaxWorkers),
	)
	eng := engine.New(opts...)

	runCfg := a.Config.EngineConfig(a.Seeds.Seed())
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, runCfg.Seed, out)
	}

	rep, runErr := eng.RunReport(ctx, runCfg)
	if err := a.writeMetrics(collector); err != nil && runErr == nil {
		return apperrors.ExitErrorGeneric
	}
	if runErr != nil {
		a.printError(runErr)
		return apperrors.ExitCodeFor(runErr)
	}

	cli.DisplayResult(out, rep, runCfg, cli.OutputConfig{
		Format:  a.Config.Format,
		Quiet:   a.Config.Quiet,
		Verbose: a.Config.Verbose,
	})
	return apperrors.ExitSuccess
}

// newLogger returns the engine logger. Logging is off unless -debug or
// -log-json is given; both write to ErrWriter.
func (a *Application) newLogger() logging.Logger {
	switch {
	case a.Config.LogJSON:
		return logging.NewStructuredLogger(a.ErrWriter, a.Config.Debug)
	case a.Config.Debug:
		return logging.NewConsoleLogger(a.ErrWriter, true)
	default:
		return logging.NewNopLogger()
	}
}

func (a *Application) writeMetrics(c *metrics.Collector) error {
	if c == nil {
		return nil
	}
	if err := c.WriteTextfile(a.Config.MetricsFile); err != nil {
		err = apperrors.WrapError(err, "saving metrics to %s", a.Config.MetricsFile)
		a.printError(err)
		return err
	}
	return nil
}

// printError reports err on ErrWriter in the theme's error color.
func (a *Application) printError(err error) {
	fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
}

// IsHelpError checks if the error is a help flag error (-help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
