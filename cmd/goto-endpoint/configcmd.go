package main

import (
	"github.com/spf13/cobra"

	"goto-endpoint/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, rootDir)
	if err != nil {
		return err
	}
	cfg.Print()
	return cfg.Validate()
}
