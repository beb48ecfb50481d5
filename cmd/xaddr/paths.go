package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/xaddr"
	"github.com/agentic-research/xaddr/internal/dom"
)

func pathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths file.xml",
		Short: "Print the canonical XPath of every addressable node",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPaths(args[0])
		},
	}
	return cmd
}

func runPaths(file string) error {
	doc, err := parseFile(file)
	if err != nil {
		return err
	}
	return dom.WalkAddressable(doc, func(path string, n xaddr.Node) error {
		content := n.Data()
		if xaddr.IsText(n) {
			content = xaddr.MergedText(n)
		}
		if n.Kind() == xaddr.KindElement {
			content = n.Name()
		}
		fmt.Printf("%s\t%s\t%s\n", path, n.Kind(), excerpt(content, 60))
		return nil
	})
}

func parseFile(file string) (*dom.Document, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return doc, nil
}
