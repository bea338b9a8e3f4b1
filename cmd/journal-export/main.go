// One-shot tool: export the tool-call journal from SQLite to a Parquet file.
//
// Usage:
//
//	go run cmd/journal-export/main.go calls.db calls.parquet
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hgaddipati1118/alpaca-mcp-server/internal/journal"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: journal-export SQLITE_PATH PARQUET_PATH")
		os.Exit(1)
	}
	dbPath, outPath := os.Args[1], os.Args[2]

	store, err := journal.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	n, err := store.ExportParquet(context.Background(), outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "exporting: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("exported %d rows to %s\n", n, outPath)
}
