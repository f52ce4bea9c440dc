package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tablesink/internal/backend"
)

var (
	cfgFile     string
	storeName   string
	backendName string
	verbose     bool
	dataDir     string

	logger *slog.Logger
)

var RootCmd = &cobra.Command{
	Use:   "tablesink",
	Short: "Dataset ingestion with schema sync, atomic replace and versioned backups",
	Long: `tablesink loads datasets into a relational store.

Tables and missing columns are created on the fly, values are coerced to the
declared column types, and every save swaps the full table contents in a
single transaction. Backup tables keep stamped snapshots that only ever grow.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		w := colorable.NewColorable(os.Stderr)
		logger = slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		}))
		slog.SetDefault(logger)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tablesink.yaml)")
	RootCmd.PersistentFlags().StringVar(&storeName, "store", "", "named store from config (default: the active one)")
	RootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "backend kind: postgres, csv, temp")
	RootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "data directory for file backends")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	viper.BindPFlag("backend", RootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("dir", RootCmd.PersistentFlags().Lookup("dir"))
	viper.SetDefault("backend", "postgres")
	viper.SetDefault("dir", "data")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("tablesink")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// activeBackend resolves the configured backend kind and wires it up.
func activeBackend() (*backend.Backend, error) {
	kind, err := backend.ParseKind(viper.GetString("backend"))
	if err != nil {
		return nil, err
	}

	opts := backend.Options{
		Dir: viper.GetString("dir"),
		Log: logger,
	}
	if kind == backend.KindPostgres {
		cfg, err := GetActiveStoreConfig()
		if err != nil {
			return nil, err
		}
		opts.Store = cfg.ToStoreConfig()
		logger.Debug("store selected", "name", cfg.Name, "driver", cfg.Driver, "namespace", opts.Store.Namespace)
	}
	return backend.New(kind, opts)
}
