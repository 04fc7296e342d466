package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/superstore-dash/internal/cli"
	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/config"
	"github.com/Veraticus/superstore-dash/internal/dataset"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v        *viper.Viper
	settings *config.Settings
	// cache holds parsed sources for the life of the process.
	cache   *dataset.Cache
	cfgFile string
	fromDB  string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:   "superstore",
		Short: cli.StoreIcon + " Global Superstore sales dashboard",
		Long: `superstore loads the Global Superstore order export and turns it into
a filterable sales dashboard: ten aggregate views plus headline metrics,
available as terminal tables, PNG charts, an Excel workbook, a SQLite
snapshot, an HTTP API and an interactive explorer.`,
		PersistentPreRunE: a.initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/superstore/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String(config.FlagData, "", "path to the sales CSV")
	flags.StringVar(&a.fromDB, "from-db", "", "read records from a SQLite export instead of the CSV")
	flags.String("encoding", "", "source encoding (auto, latin1, utf-8)")
	flags.StringSlice("segment", nil, "segments to include (repeatable, default all)")
	flags.StringSlice("category", nil, "categories to include (repeatable, default all)")
	flags.StringSlice("region", nil, "regions to include (repeatable, default all)")
	flags.Bool("none", false, "start from an empty selection")
	flags.Bool("progress", true, "show a progress bar while loading")

	bindings := map[string]string{
		config.KeyLogLevel:       "log-level",
		config.KeyLogFormat:      "log-format",
		config.KeyDataPath:       config.FlagData,
		config.KeyDataEncoding:   "encoding",
		config.KeyFilterSegment:  "segment",
		config.KeyFilterCategory: "category",
		config.KeyFilterRegion:   "region",
	}
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		summaryCmd(a),
		viewsCmd(a),
		filtersCmd(a),
		exportCmd(a),
		renderCmd(a),
		serveCmd(a),
		exploreCmd(a),
		versionCmd(),
	)

	return root
}

func main() {
	handler := cli.NewInterruptHandler(os.Stderr, "Interrupted, shutting down...")
	ctx, stop := handler.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(config.ExpandPath(a.cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		a.v.AddConfigPath(fmt.Sprintf("%s/.config/superstore", home))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(config.EnvKeyReplacer)
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := a.setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	settings, err := config.Load(a.v, cmd.Flags())
	if err != nil {
		return err
	}
	a.settings = settings

	progress, _ := cmd.Flags().GetBool("progress")
	a.cache = dataset.NewCache(dataset.NewLoader(dataset.Options{
		Encoding: settings.Data.Encoding,
		Progress: progress,
	}))

	slog.Debug("Configuration loaded",
		"config", a.v.ConfigFileUsed(),
		"data", settings.Data.Path,
		"encoding", settings.Data.Encoding)

	return nil
}

func (a *app) setupLogging() error {
	level, err := common.ParseLevel(a.v.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, a.v.GetString(config.KeyLogFormat))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "superstore %s\n", version)
		},
	}
}
