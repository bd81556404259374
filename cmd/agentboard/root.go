package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aristath/agentboard/internal/config"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	globalConfigPath  string
	projectConfigPath string
	debug             bool

	rootCmd = &cobra.Command{
		Use:     "agentboard",
		Short:   "agentboard is a terminal dashboard for an agent task backlog",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context())
		},
	}
)

// Execute runs the root command.
func Execute() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
		return err
	}

	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "global-config",
		filepath.Join(homeDir, ".agentboard", "config.json"), "global config file path")
	rootCmd.PersistentFlags().StringVar(&projectConfigPath, "config",
		filepath.Join(".agentboard", "config.json"), "project config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// loadConfig merges defaults, global, and project config files.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(globalConfigPath, projectConfigPath)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// defaultDBPath resolves the backlog database location.
func defaultDBPath(cfg *config.Config) (string, error) {
	if cfg.Source.DBPath != "" {
		return cfg.Source.DBPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".agentboard", "backlog.db"), nil
}

// configCmd writes the default configuration to the project path.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default project config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(projectConfigPath); err == nil {
				return fmt.Errorf("config already exists at %s", projectConfigPath)
			}
			if err := config.Save(config.DefaultConfig(), projectConfigPath); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", projectConfigPath)
			return nil
		},
	})
	return cmd
}
