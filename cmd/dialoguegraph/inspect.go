package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/dialoguegraph/internal/config"
	"github.com/gyaneshwarpardhi/dialoguegraph/internal/editor"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the dialogue tree after pruning edges that break speaker alternation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			doc, err := loadValid(cfgPath)
			if err != nil {
				return err
			}
			ed, err := editor.New(doc, nil)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), ed)
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a dialogue document and report edges that would be pruned",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			doc, err := loadValid(cfgPath)
			if err != nil {
				return err
			}
			ed, err := editor.New(doc, nil)
			if err != nil {
				return err
			}
			kept := make(map[string][]string)
			for _, n := range ed.Snapshot().Nodes {
				kept[n.ID] = n.Children
			}
			out := cmd.OutOrStdout()
			dropped := 0
			for _, n := range doc.Dialogue.Nodes {
				for _, child := range n.Children {
					if !slices.Contains(kept[n.ID], child) {
						fmt.Fprintf(out, "pruned %s -> %s\n", n.ID, child)
						dropped++
					}
				}
			}
			fmt.Fprintf(out, "%s: ok (%d nodes, %d edges pruned)\n", cfgPath, len(doc.Dialogue.Nodes), dropped)
			return nil
		},
	}
}

func loadValid(path string) (*config.Document, error) {
	l, err := config.NewLoader(path)
	if err != nil {
		return nil, err
	}
	doc := l.Config()
	if err := config.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func printTree(w io.Writer, ed *editor.Editor) {
	ed.Walk(func(n config.NodeDef, depth int) {
		speaker := "npc"
		if n.Player {
			speaker = "player"
		}
		fmt.Fprintf(w, "%s- [%s] %s %q\n", strings.Repeat("  ", depth), speaker, n.ID, n.Text)
	})
}
