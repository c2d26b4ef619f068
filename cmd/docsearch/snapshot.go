package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/docsearch/corpus"
	"github.com/jonwraymond/docsearch/index"
)

var (
	snapshotOut   string
	snapshotBleve string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <corpus.json>",
	Short: "Build a serialized index from a corpus",
	Long: `The snapshot command indexes a corpus file and writes either a JSON
snapshot (--out) or an on-disk bleve index directory (--bleve). Either can
be used as search.index_path.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "", "write a JSON snapshot to this file")
	snapshotCmd.Flags().StringVar(&snapshotBleve, "bleve", "", "write a bleve index to this directory")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if (snapshotOut == "") == (snapshotBleve == "") {
		return errors.New("exactly one of --out or --bleve is required")
	}

	docs, err := corpus.LoadFile(args[0])
	if err != nil {
		return err
	}
	snap := index.NewSnapshot(docs)

	if snapshotBleve != "" {
		if err := index.Build(snapshotBleve, snap); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d documents into %s\n", len(snap.Documents), snapshotBleve)
		return nil
	}

	blob, err := snap.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(snapshotOut, blob, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d documents to %s\n", len(snap.Documents), snapshotOut)
	return nil
}
