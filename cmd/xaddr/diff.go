package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/agentic-research/xaddr/internal/xmldiff"
)

func diffCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "diff a.xml b.xml",
		Short: "Compare two documents by canonical node path",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			return runDiff(args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

func runDiff(fileA, fileB string) error {
	a, err := parseFile(fileA)
	if err != nil {
		return err
	}
	b, err := parseFile(fileB)
	if err != nil {
		return err
	}

	changes, err := xmldiff.Compare(a, b)
	if err != nil {
		return err
	}

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	for _, ch := range changes {
		switch ch.Op {
		case xmldiff.OpMissing:
			red.Printf("- %s\t%s\t%s\n", ch.Path, ch.Kind, excerpt(ch.A, 60))
		case xmldiff.OpAdded:
			green.Printf("+ %s\t%s\t%s\n", ch.Path, ch.Kind, excerpt(ch.B, 60))
		case xmldiff.OpChanged:
			fmt.Printf("~ %s\t%s\t%s\n", ch.Path, ch.Kind, renderEdits(ch, red, green))
		}
	}
	return nil
}

func renderEdits(ch xmldiff.Change, red, green *color.Color) string {
	if len(ch.Edits) == 0 {
		return fmt.Sprintf("%s -> %s", excerpt(ch.A, 30), excerpt(ch.B, 30))
	}
	var sb strings.Builder
	for _, d := range ch.Edits {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString(red.Sprint(d.Text))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(green.Sprint(d.Text))
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return excerpt(sb.String(), 120)
}
