// Command formbuilder edits form layouts kept in a directory store, prints
// their page structure and submission schema, and fills them in from the
// terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/prompt"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	storeDir   string
	output     string
	verbose    bool
	strict     bool

	cfg    config.Config
	logger *zap.Logger
	store  store.Store
	// driver overrides the terminal prompt driver used by "fill".
	driver prompt.PromptDriver
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Build multi-page forms from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "formbuilder.yaml", "configuration file (YAML)")
	flags.StringVar(&a.storeDir, "store", "", "directory holding form documents (overrides config)")
	flags.StringVarP(&a.output, "output", "o", "", "output format: json, yaml or pretty (overrides config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.strict, "strict", false, "fail on unknown field or option ids")

	root.AddCommand(
		newNewCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newImportCmd(a),
		newAddCmd(a),
		newDuplicateCmd(a),
		newRemoveCmd(a),
		newMoveCmd(a),
		newUpdateCmd(a),
		newPagesCmd(a),
		newSchemaCmd(a),
		newValidateCmd(a),
		newFillCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.logger == nil {
		logCfg := zap.NewProductionConfig()
		if a.verbose {
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := logCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.StoreDir = a.storeDir
	}
	if flags.Changed("output") {
		cfg.OutputFormat = a.output
	}
	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.store == nil {
		dir, err := store.NewDir(cfg.StoreDir)
		if err != nil {
			return err
		}
		a.store = dir
	}
	a.logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("store", cfg.StoreDir),
		zap.String("output", cfg.OutputFormat),
		zap.Bool("strict", cfg.Strict),
	)
	return nil
}

func (a *app) editor() *editor.Editor {
	if a.cfg.Strict {
		return editor.New(editor.WithStrictReferences())
	}
	return editor.New()
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
