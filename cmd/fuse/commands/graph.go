package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/fuse/internal/core/domain"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [entry]",
		Short: "Build and print the module dependency graph for an entry file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := ""
			if len(args) > 0 {
				entry = args[0]
			}
			node, err := c.app.BuildGraph(cmd.Context(), entry)
			if err != nil {
				return err
			}
			renderGraph(cmd.OutOrStdout(), node)
			return nil
		},
	}
}

func renderGraph(w io.Writer, node *domain.Module) {
	fmt.Fprintln(w, node.Name)
	for _, dep := range node.Dependencies {
		marker := ""
		if dep.Info.External {
			marker = " (external)"
		}
		fmt.Fprintf(w, "  %s -> %s%s\n", dep.Specifier, dep.Info.Name, marker)
	}

	if unique := node.UniqueModules(); len(unique) > 0 {
		fmt.Fprintf(w, "modules (%d):\n", len(unique))
		for _, path := range unique {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}

	if len(node.StyleHeaders) > 0 {
		fmt.Fprintf(w, "styles (%d):\n", len(node.StyleHeaders))
		for _, header := range node.StyleHeaders {
			fmt.Fprintf(w, "  %s\n", header.RequestPath)
		}
	}

	for _, diag := range node.Diagnostics {
		fmt.Fprintln(w, diag.String())
	}
}
