package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/docsearch/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch [queries-file]",
	Short: "Run one search per input line, printing JSON lines",
	Long: `The batch command reads queries (one per line) from a file or stdin and
writes one JSON object per query, in input order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

type batchLine struct {
	batch.Result
	Error string `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	in, done, err := inputArg(cmd, args)
	if err != nil {
		return err
	}
	defer done()

	queries, err := batch.ReadQueries(in)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	runner, err := batch.New(a.searcher, batch.Options{Workers: a.cfg.Batch.Workers, Logger: a.log})
	if err != nil {
		return err
	}
	defer runner.Release()

	results := runner.Run(cmd.Context(), queries)

	failed := 0
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, res := range results {
		line := batchLine{Result: res}
		if res.Err != nil {
			line.Error = res.Err.Error()
			failed++
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}

	a.log.Info("batch complete", zap.Int("queries", len(results)), zap.Int("failed", failed))
	return nil
}
