// Package cli implements the taskbot command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"taskbot/internal/bot"
	"taskbot/internal/commands"
	"taskbot/internal/config"
	"taskbot/internal/exitcode"
	"taskbot/internal/logging"
)

// ErrTransport marks failures talking to the chat platform.
var ErrTransport = errors.New("transport error")

// TransportFactory creates the chat transport from config.
// Used to inject the transport during dispatch.
type TransportFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (bot.Transport, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  TransportFactory
}

// NewDispatcher creates a new dispatcher with the given chat command registry
// and transport factory.
func NewDispatcher(registry *commands.Registry, factory TransportFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configDir string
	envFile   string
	logLevel  string
	debug     bool
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	root := d.rootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitCode(err)
	}
	return exitcode.Success
}

func (d *Dispatcher) rootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "taskbot",
		Short: "Telegram bot for tasks and subtasks",
		Long: `taskbot runs a Telegram bot that keeps a task list with subtasks per chat.

Without a subcommand it starts the bot (same as "taskbot run").`,
		Args:          cobra.NoArgs,
		RunE:          d.runBot(flags),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config", "", "config directory (default $XDG_CONFIG_HOME/taskbot)")
	pf.StringVar(&flags.envFile, "env-file", "", "load environment from this file (default .env if present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Start the bot",
			Args:  cobra.NoArgs,
			RunE:  d.runBot(flags),
		},
		versionCommand(),
		configCommand(flags),
	)
	return root
}

func (d *Dispatcher) runBot(flags *globalFlags) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(config.Options{
			Dir:      flags.configDir,
			EnvFile:  flags.envFile,
			LogLevel: flags.logLevel,
			Debug:    flags.debug,
		})
		if err != nil {
			return err
		}
		if err := cfg.RequireToken(); err != nil {
			return err
		}

		logger := logging.NewLogger(logging.Options{
			Level:     cfg.LogLevel,
			Format:    cfg.LogFormat,
			Writer:    cmd.ErrOrStderr(),
			Component: "taskbot",
		})

		if d.factory == nil {
			return fmt.Errorf("%w: no transport configured", ErrTransport)
		}
		transport, err := d.factory(ctx, cfg, logger)
		if err != nil {
			if errors.Is(err, bot.ErrUnauthorized) {
				return err
			}
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}

		// Zero disables expiry in config; the bot treats zero as "use default".
		ttl := cfg.SessionTTL
		if ttl == 0 {
			ttl = -1
		}

		b := bot.New(transport, bot.Options{
			Registry:      d.registry,
			SessionTTL:    ttl,
			SweepInterval: cfg.SweepInterval,
			AllowedChats:  cfg.AllowedChats,
			Logger:        logger,
		})
		if err := b.Run(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}
		return nil
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), commands.VersionString())
			return nil
		},
	}
}

func configCommand(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config.toml with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flags.configDir
			if dir == "" {
				dir = config.DefaultConfigDir()
			}
			path, err := config.WriteDefault(dir, force)
			if err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flags.configDir
			if dir == "" {
				dir = config.DefaultConfigDir()
			}
			cfg := &config.Config{Dir: dir}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Path())
			return nil
		},
	}

	cfgCmd.AddCommand(initCmd, pathCmd)
	return cfgCmd
}

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, config.ErrMissingToken), errors.Is(err, bot.ErrUnauthorized):
		return exitcode.AuthError
	case errors.Is(err, ErrTransport):
		return exitcode.BackendError
	default:
		return exitcode.UserError
	}
}
