// Package main provides the articlebuild command, which consolidates origin
// article batches into a single de-duplicated JSON file.
//
// Usage:
//
//	articlebuild [--config <file.yaml>] [--log-level debug] [--stats]
//	articlebuild config [--config <file.yaml>]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
