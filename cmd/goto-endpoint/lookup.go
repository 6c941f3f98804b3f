package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"goto-endpoint/internal/model"
)

var lookupJSON bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <file>",
	Short: "List the endpoints declared in one source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// one file: re-extract it instead of scanning the whole project
	if _, err := os.Stat(path); err == nil {
		a.manager.UpdateFile(cmd.Context(), path)
	} else {
		a.manager.RemoveFile(path)
	}

	endpoints, ok := a.manager.Lookup(path)
	if lookupJSON {
		if endpoints == nil {
			endpoints = []model.Endpoint{}
		}
		return printJSON(cmd.OutOrStdout(), endpoints)
	}
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "No endpoints declared in %s\n", args[0])
		return nil
	}
	printEndpoints(cmd.OutOrStdout(), a.cfg.Project.RootDir, endpoints)
	return nil
}
