package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/scidatatool/scidata"
	"github.com/scidatatool/scidata/i18n"
	"github.com/scidatatool/scidata/internal/logger"
)

// app carries the state shared by every subcommand of one root command.
type app struct {
	cfgFile string
	verbose bool
	cfg     *viper.Viper
	log     *zap.Logger
}

// newRootCmd builds the command tree. Each call returns an independent tree
// with its own configuration.
func newRootCmd() *cobra.Command {
	a := &app{cfg: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "scidata",
		Short: "Inspect, convert and validate saved data records",
		Long: `scidata works with the JSON and YAML files written for Data, Data1D,
DataLinspace and VectorField records. It can print a record, convert it
between formats, export the JSON Schema of a class, and validate files
against it.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(cmd); err != nil {
				return err
			}
			return a.setupLogging()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			logger.Sync(a.log)
		},
		SilenceUsage: true,
	}

	// Global flags
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.scidata.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().String("lang", "en", "language of error messages (en, ja)")
	_ = a.cfg.BindPFlag("lang", root.PersistentFlags().Lookup("lang"))

	root.AddCommand(
		newShowCmd(a),
		newConvertCmd(a),
		newSchemaCmd(a),
		newValidateCmd(a),
		newClassesCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig loads configuration from the config file and environment.
func (a *app) initConfig(cmd *cobra.Command) error {
	v := a.cfg
	v.SetDefault("max_depth", 0)
	v.SetDefault("max_bytes", 0)
	v.SetDefault("duplicate_keys", "warn")
	v.SetDefault("validate_schema", false)
	v.SetDefault("log_mode", "dev")

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".scidata")
	}

	v.SetEnvPrefix("SCIDATA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	i18n.SetLanguage(v.GetString("lang"))
	return nil
}

func (a *app) setupLogging() error {
	l, err := logger.New(a.cfg.GetString("log_mode"), a.verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.log = l
	if used := a.cfg.ConfigFileUsed(); used != "" {
		a.log.Debug("using config file", zap.String("file", used))
	}
	return nil
}

// ioOptions turns the loaded configuration into load options.
func (a *app) ioOptions() ([]scidata.IOOption, error) {
	dup, err := scidata.ParseSeverity(a.cfg.GetString("duplicate_keys"))
	if err != nil {
		return nil, fmt.Errorf("invalid duplicate_keys: %w", err)
	}
	return []scidata.IOOption{
		scidata.WithLogger(a.log),
		scidata.WithMaxDepth(a.cfg.GetInt("max_depth")),
		scidata.WithMaxBytes(a.cfg.GetInt64("max_bytes")),
		scidata.WithDuplicateKeys(dup),
		scidata.WithSchemaValidation(a.cfg.GetBool("validate_schema")),
	}, nil
}
