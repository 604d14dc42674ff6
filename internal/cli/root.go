// Package cli implements the workdeck command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randalmurphal/workdeck/internal/config"
	"github.com/randalmurphal/workdeck/internal/db"
	"github.com/randalmurphal/workdeck/internal/db/driver"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	jsonOut bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "workdeck",
	Short: "Workspace dashboard and derived-metrics engine",
	Long: `workdeck aggregates a workspace's transactional stores into composite
operational metrics: health score, productivity index, budget
utilization, monthly trends, and activity feeds.

Quick start:
  workdeck init                 Initialize workdeck in current directory
  workdeck seed export.json     Import a workspace export
  workdeck dashboard            Compute the composite dashboard
  workdeck overview --period year
  workdeck finance`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .workdeck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newOverviewCmd())
	rootCmd.AddCommand(newFinanceCmd())
	rootCmd.AddCommand(newSprintsCmd())
	rootCmd.AddCommand(newBurndownCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.WorkdeckDir)
		viper.AddConfigPath("$HOME/" + config.WorkdeckDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("WORKDECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

// openStore opens the configured workspace database.
func openStore() (*db.DB, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	dialect, err := driver.ParseDialect(cfg.Database.Dialect)
	if err != nil {
		return nil, nil, err
	}

	store, err := db.OpenWithDialect(cfg.DSN(), dialect)
	if err != nil {
		return nil, nil, fmt.Errorf("open workspace store: %w", err)
	}
	return store, cfg, nil
}
