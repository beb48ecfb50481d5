package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/xaddr/internal/pathindex"
)

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index file.xml out.db",
		Short: "Write a SQLite index of node paths",
		Long: `Build a SQLite database mapping the canonical path of every addressable
node to its kind, name and content, with a name-to-paths sidecar for fast
lookups. Diff tools use it to address nodes of a baseline document across
runs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runIndex(args[0], args[1])
		},
	}
	return cmd
}

func runIndex(file, dbPath string) error {
	doc, err := parseFile(file)
	if err != nil {
		return err
	}

	w, err := pathindex.Create(dbPath)
	if err != nil {
		return err
	}
	if err := w.IndexDocument(doc); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	fmt.Printf("Indexed %s -> %s\n", file, dbPath)
	return nil
}
