package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/docsearch/search"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query <input>",
	Short: "Run one search and print the hits",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print hits as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	hits, err := a.searcher.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if queryJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	for i, hit := range hits {
		fmt.Fprintf(out, "%d. %s  %s\n", i+1, hit.HighlightResult.Hierarchy.Lvl0.Value, hit.URL)
		if hit.HighlightResult.Hierarchy.Lvl1 != nil {
			fmt.Fprintf(out, "   %s\n", hit.HighlightResult.Hierarchy.Lvl1.Value)
		}
	}
	if snippets := search.Hits(hits).Snippets(); len(snippets) > 0 {
		fmt.Fprintln(out, "\nPreviews:")
		for _, s := range snippets {
			fmt.Fprintf(out, "  %s\n", s)
		}
	}
	return nil
}
