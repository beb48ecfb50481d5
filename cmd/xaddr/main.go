// Package main provides the xaddr CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xaddr",
		Short: "Canonical XPath addressing for XML documents",
		Long: `xaddr computes canonical, positional XPath expressions that uniquely
address nodes in XML documents, and resolves them back to nodes. It is the
addressing layer XML diff/patch tooling builds on.`,
	}

	rootCmd.AddCommand(pathsCmd())
	rootCmd.AddCommand(evalCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(indexCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// excerpt shortens node content for one-line display.
func excerpt(s string, max int) string {
	if max <= 0 {
		return ""
	}
	out := make([]rune, 0, max)
	for _, r := range s {
		switch r {
		case '\n', '\t':
			r = ' '
		}
		out = append(out, r)
		if len(out) == max {
			return string(out[:max-1]) + "…"
		}
	}
	return string(out)
}
