package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"goto-endpoint/internal/logger"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Delete the persisted endpoint cache",
	Long:  "Removes the cache artifact so the next command parses every file again.",
	Args:  cobra.NoArgs,
	RunE:  runClearCache,
}

func init() {
	rootCmd.AddCommand(clearCacheCmd)
}

func runClearCache(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Delete(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	logger.Info("🧹 Cache cleared (%s)", a.store.Path())
	return nil
}
