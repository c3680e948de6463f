// Package cli implements the todo command-line interface. The CLI is a host
// application for the store: every command is translated into a dispatcher
// call and the caller-form result is rendered as a table or as JSON.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/todos/internal/bridge"
	"github.com/mesh-intelligence/todos/internal/paths"
	"github.com/mesh-intelligence/todos/pkg/todos"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
}

// app is the state shared by one invocation of the command tree.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	logger    *slog.Logger
	handle    *todos.Handle
}

// NewRootCmd creates the top-level "todo" command with global flags and all
// subcommands registered. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "A local todo list backed by a single persisted slot",
		Version:       todos.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/todos)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/todos)")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: file, sqlite, badger, memory")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return invalidArg(err)
	})

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newUpsertCmd(a),
		newDeleteCmd(a),
		newClearCmd(a),
		newCallCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the code matching the error.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "todo:", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps an error to the process exit code. Caller mistakes exit 1;
// storage, configuration, and everything else exits 2.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrInvalidArgument), errors.Is(err, types.ErrNotFound):
		return exitUserError
	default:
		return exitSysError
	}
}

// setup resolves directories, loads config.yaml, and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir, cmd.Root().PersistentFlags().Lookup("backend"))
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// storeConfig assembles the store configuration from flags and config.yaml.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
		SlotKey: a.cfg.GetString(cfgKeySlotKey),
	}, nil
}

// open attaches the configured store once per invocation.
func (a *app) open() (*todos.Handle, error) {
	if a.handle != nil {
		return a.handle, nil
	}
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	h, err := todos.Open(cfg, todos.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.handle = h
	return h, nil
}

// dispatcher opens the store and returns a dispatcher over it.
func (a *app) dispatcher() (*bridge.Dispatcher, error) {
	h, err := a.open()
	if err != nil {
		return nil, err
	}
	return bridge.New(h.Store, a.logger), nil
}

// storeRunE wraps a command body that may open the store so the store is
// closed whether the body succeeds or fails.
func (a *app) storeRunE(body func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := a.close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		return body(cmd, args)
	}
}

func (a *app) close() error {
	if a.handle == nil {
		return nil
	}
	err := a.handle.Close()
	a.handle = nil
	if err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
