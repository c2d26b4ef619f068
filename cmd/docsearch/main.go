// Command docsearch serves and inspects documentation search.
//
//	docsearch serve     --config config.yaml   HTTP API (+ /mcp)
//	docsearch mcp       --config config.yaml   MCP over stdio
//	docsearch query     '"red pepper" spicy'   one-shot search
//	docsearch batch     queries.txt            many searches, JSON lines out
//	docsearch snapshot  --out index.json       build a serialized index
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
