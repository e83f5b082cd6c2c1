package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/dshills/healthmetrics/internal/menu"
)

func newMenuCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Render the policy context pages menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := menu.PolicyCardMenuMobile()
			switch format {
			case "html":
				html, err := t.HTML()
				if err != nil {
					return codeError(exitInput, "rendering menu: %s", err)
				}
				return writeOutput(cmd, out, []byte(html))
			case "json":
				data, err := json.MarshalIndent(t, "", "  ")
				if err != nil {
					return err
				}
				return writeOutput(cmd, out, data)
			case "text":
				return writeOutput(cmd, out, []byte(menuText(t)))
			default:
				return codeError(exitInput, "invalid format: --format must be html, json or text, got %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "html", "Output format: html, json or text")
	cmd.Flags().StringVar(&out, "out", "", "Write output to file instead of stdout")
	return cmd
}

// menuText renders the menu as an indented tree for terminals.
func menuText(t menu.Tree) string {
	root := tree.Root(styleTitle.Render(t.Label))
	addEntries(root, t.Entries)
	return root.String() + "\n"
}

func addEntries(parent *tree.Tree, entries []menu.Entry) {
	for _, e := range entries {
		label := fmt.Sprintf("%s %s", e.Label, styleDim.Render(e.Path))
		if len(e.Children) == 0 {
			parent.Child(label)
			continue
		}
		node := tree.Root(label)
		addEntries(node, e.Children)
		parent.Child(node)
	}
}
