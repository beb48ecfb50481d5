package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/xaddr"
)

func evalCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "eval file.xml path",
		Short: "Resolve a canonical XPath against a document",
		Long: `Resolve a path produced by xaddr against a document and print the node
it addresses. With --offset, print the single character at that 1-based
position of the node's merged text run instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEval(args[0], args[1], offset)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "1-based char offset into the text run")
	return cmd
}

func runEval(file, path string, offset int) error {
	doc, err := parseFile(file)
	if err != nil {
		return err
	}

	n, err := xaddr.Resolve(doc, path)
	if err != nil {
		return err
	}

	if offset > 0 {
		if !xaddr.IsText(n) {
			return fmt.Errorf("--offset: %q is not a text node", path)
		}
		runes := []rune(xaddr.MergedText(n))
		if offset > len(runes) {
			return fmt.Errorf("--offset %d out of range (run has %d chars)", offset, len(runes))
		}
		fmt.Printf("%c\n", runes[offset-1])
		return nil
	}

	switch n.Kind() {
	case xaddr.KindElement:
		fmt.Printf("%s\t<%s>\n", n.Kind(), n.Name())
	case xaddr.KindAttribute:
		fmt.Printf("%s\t%s=%q\n", n.Kind(), n.Name(), n.Data())
	case xaddr.KindText, xaddr.KindCDATA:
		fmt.Printf("%s\t%s\n", n.Kind(), excerpt(xaddr.MergedText(n), 120))
	default:
		fmt.Printf("%s\t%s\n", n.Kind(), excerpt(n.Data(), 120))
	}
	return nil
}
