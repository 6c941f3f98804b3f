package main

import (
	"github.com/spf13/cobra"
)

const (
	appName    = "goto-endpoint"
	appVersion = "1.0.0"
)

var (
	configPath string
	rootDir    string
	verbose    bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "Index and search the HTTP endpoints of a Spring codebase",
	Long:          "Finds @RequestMapping style handlers in Java sources, keeps an incremental on-disk index and jumps from a URL to the method that serves it.",
	Version:       appVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to configuration file (default ./goto-endpoint.yaml)")
	pf.StringVar(&rootDir, "root", "", "Project root to index (overrides project.root_dir)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (DEBUG level)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Hide progress bars")
}
