package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"goto-endpoint/internal/model"
	"goto-endpoint/internal/search"
	"goto-endpoint/internal/ui"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find endpoints by handler name, path or controller name",
	Long:  "Ranks endpoints by how well the query matches the handler method name, the full path and the controller class. Matching is case-insensitive.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", -1, "Maximum number of results (default search.limit, 0 = unlimited)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pipeline := a.newPipeline(ui.PhaseScanning, ui.PhaseIndexing)
	_, err = a.refresh(cmd.Context(), false, pipeline)
	pipeline.Finish()
	if err != nil {
		return err
	}

	var results []model.Endpoint
	if searchLimit >= 0 {
		results = search.NewEngine(searchLimit).Search(a.manager.AllEndpoints(), args[0])
	} else {
		results = a.manager.Search(args[0])
	}

	if searchJSON {
		return printJSON(cmd.OutOrStdout(), results)
	}
	if len(results) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No endpoints match %q\n", args[0])
		return nil
	}
	printEndpoints(cmd.OutOrStdout(), a.cfg.Project.RootDir, results)
	return nil
}

// printEndpoints writes one line per endpoint: verb, path, handler and a
// file:line:column location editors can jump to
func printEndpoints(w io.Writer, root string, endpoints []model.Endpoint) {
	for _, ep := range endpoints {
		location := ep.FilePath
		if rel, err := filepath.Rel(root, ep.FilePath); err == nil {
			location = rel
		}
		fmt.Fprintf(w, "%-7s %-45s %s.%s  %s:%d:%d\n",
			ep.HTTPMethod, ep.FullPath, ep.ClassName, ep.MethodName,
			location, ep.StartLine, ep.StartColumn)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
