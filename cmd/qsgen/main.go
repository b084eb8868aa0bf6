// Command qsgen generates ToQueryString and TryToQueryString methods for Go
// struct types.
//
// Mark a type with the //qs:generate directive and run qsgen from go generate:
//
//	//go:generate go run github.com/dmitrymomot/qsgen/cmd/qsgen
//
//	//qs:generate
//	type SearchParams struct {
//		Page     *uint32
//		PageSize *uint32
//	}
//
// Usage:
//
//	qsgen [flags] [dir]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "qsgen: %v\n", err)
		return 1
	}
	return 0
}
