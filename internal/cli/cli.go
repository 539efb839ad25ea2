// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - One-shot runner and application wiring for tasks-cli.
//
// The cobra command tree is generated from the command registry, so the
// one-shot runner and the interactive shell always expose the same
// commands. Cobra handles flags, --help and --version; the registry
// validates arguments and dispatches.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/tasks-cli/internal/commands"
	"github.com/jeranaias/tasks-cli/internal/config"
	"github.com/jeranaias/tasks-cli/internal/logging"
	"github.com/jeranaias/tasks-cli/internal/taskapi"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// APPLICATION
// =============================================================================

// AppOptions configures NewApp. Zero values select the production wiring.
type AppOptions struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Registry replaces the built-in command table
	Registry *commands.Registry

	// TaskSource replaces the HTTP task service client
	TaskSource commands.TaskSource

	// Reader replaces the shell's line reader
	Reader LineReader

	// Now replaces time.Now for date-relative commands
	Now func() time.Time
}

type globalFlags struct {
	configPath string
	apiURL     string
	verbose    bool
	noColor    bool
}

// App holds the state shared by one invocation of the CLI.
type App struct {
	opts     AppOptions
	registry *commands.Registry
	flags    globalFlags

	cfg     *config.Config
	logger  *zap.Logger
	printer *TaskPrinter
	env     *commands.Env
}

// NewApp creates an application. The registry is frozen here.
func NewApp(opts AppOptions) *App {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	registry := opts.Registry
	if registry == nil {
		registry = commands.NewRegistry()
	}
	registry.Freeze()

	return &App{
		opts:     opts,
		registry: registry,
		logger:   logging.Nop(),
		printer: NewTaskPrinter(PrinterOptions{
			Out:       opts.Stdout,
			ErrOut:    opts.Stderr,
			ColorMode: config.ColorAuto,
		}),
	}
}

// Execute runs the CLI with process streams and returns the exit code.
func Execute(args []string) int {
	return NewApp(AppOptions{}).Run(args)
}

// Run executes args and returns the exit code. Failures are printed as a
// single error line.
func (a *App) Run(args []string) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	root := a.newRootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	defer func() { _ = a.logger.Sync() }()

	if err != nil {
		a.printer.Error(err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// =============================================================================
// COMMAND TREE
// =============================================================================

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tasks-cli [command]",
		Short: "Query the task service from the terminal",
		Long: `tasks-cli lists scheduled tasks from the task service.

Run a single command, e.g.

  tasks-cli list 2024-01-01

or run without a command to start the interactive shell.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.runShell(cmd.Context())
			}
			// Not a subcommand: let the registry report it.
			return a.dispatch(cmd.Context(), args)
		},
	}

	root.SetIn(a.opts.Stdin)
	root.SetOut(a.opts.Stdout)
	root.SetErr(a.opts.Stderr)
	root.SetVersionTemplate("tasks-cli {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &commands.InvalidArgumentsError{Command: cmd.Name(), Reason: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default: ~/.tasks-cli/config.toml)")
	pf.StringVar(&a.flags.apiURL, "api-url", "", "task service base URL")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging on stderr")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	for _, c := range a.registry.All() {
		c := c
		root.AddCommand(&cobra.Command{
			Use:     c.UsageLine(),
			Aliases: c.Aliases,
			Short:   c.Description,
			Hidden:  c.Hidden,
			Args:    cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.dispatch(cmd.Context(), append([]string{c.Name}, args...))
			},
		})
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runShell(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "tasks-cli v%s\n", Version)
				fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
				fmt.Fprintf(w, "  Build Date: %s\n", BuildDate)
				fmt.Fprintf(w, "  Go Version: %s\n", runtime.Version())
				fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
			},
		},
	)

	return root
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads configuration, applies global flags and builds the logger,
// printer and handler environment.
func (a *App) setup() error {
	cfg, loadWarning, err := a.loadConfig()
	if err != nil {
		return err
	}

	if a.flags.apiURL != "" {
		cfg.API.BaseURL = a.flags.apiURL
		if err := cfg.Validate(); err != nil {
			return &ConfigError{Err: err}
		}
	}
	if a.flags.noColor {
		cfg.UI.Color = config.ColorNever
	}
	a.cfg = cfg

	a.logger = logging.New(logging.Options{Verbose: a.flags.verbose, Output: a.opts.Stderr})
	if loadWarning != nil {
		a.logger.Warn("ignoring config file, using defaults", zap.Error(loadWarning))
	}
	source := cfg.Source
	if source == "" {
		source = "defaults"
	}
	a.logger.Debug("config loaded",
		zap.String("source", source),
		zap.String("api", cfg.API.BaseURL),
		zap.Duration("timeout", cfg.TimeoutDuration()))

	a.printer = NewTaskPrinter(PrinterOptions{
		Out:       a.opts.Stdout,
		ErrOut:    a.opts.Stderr,
		ColorMode: cfg.UI.Color,
	})

	tasks := a.opts.TaskSource
	if tasks == nil {
		tasks = taskapi.NewClientWithConfig(&taskapi.ClientConfig{
			BaseURL:           cfg.API.BaseURL,
			Timeout:           cfg.TimeoutDuration(),
			RequestsPerSecond: cfg.API.RequestsPerSecond,
			UserAgent:         cfg.API.UserAgent + "/" + Version,
			Logger:            a.logger.Named("taskapi"),
		})
	}

	a.env = &commands.Env{
		Tasks: tasks,
		Out:   a.printer,
		Now:   a.opts.Now,
	}
	return nil
}

// loadConfig returns the config named by --config, or the default config.
// A broken default config file is reported as a warning, not an error.
func (a *App) loadConfig() (cfg *config.Config, warning, err error) {
	if path := a.flags.configPath; path != "" {
		cfg, err = config.LoadFromPath(path)
		if err != nil {
			return nil, nil, &ConfigError{Path: path, Err: err}
		}
		return cfg, nil, nil
	}

	cfg, warning = config.Load()
	if cfg == nil {
		return nil, nil, &ConfigError{Err: warning}
	}
	return cfg, warning, nil
}

// =============================================================================
// EXECUTION
// =============================================================================

// dispatch runs one argument vector through the registry.
func (a *App) dispatch(ctx context.Context, argv []string) error {
	start := time.Now()
	err := a.registry.Dispatch(ctx, a.env, argv)
	a.logger.Debug("dispatch",
		zap.String("command", argv[0]),
		zap.String("argv", commands.Join(argv)),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))
	return err
}

// runShell runs the interactive shell until the user leaves it.
func (a *App) runShell(ctx context.Context) error {
	reader := a.opts.Reader
	if reader == nil {
		reader = a.newLineReader()
	}
	if _, ok := reader.(*LinerReader); ok {
		a.printWelcome()
	}

	shell := NewShell(ShellOptions{
		Registry: a.registry,
		Env:      a.env,
		Reader:   reader,
		Printer:  a.printer,
		Logger:   a.logger,
		Prompt:   a.cfg.Shell.Prompt,
	})
	return shell.Run(ctx)
}

// newLineReader picks liner for a terminal and a pipe reader otherwise.
func (a *App) newLineReader() LineReader {
	if !isTerminal(a.opts.Stdin) {
		return NewPipeReader(a.opts.Stdin)
	}

	opts := LinerOptions{
		HistoryLimit: a.cfg.Shell.HistoryLimit,
		Completer:    commands.NewCompleter(a.registry, ShellDirectives...).Complete,
	}
	if a.cfg.Shell.History {
		path, err := config.HistoryPath()
		if err != nil {
			a.logger.Warn("shell history disabled", zap.Error(err))
		} else {
			opts.HistoryPath = path
		}
	}
	return NewLinerReader(opts)
}

func (a *App) printWelcome() {
	st := a.printer.Styles()
	fmt.Fprintf(a.opts.Stdout, "%s %s\n",
		st.Heading.Render("tasks-cli v"+Version),
		st.Dim.Render("type help for commands, exit to quit"))
}
