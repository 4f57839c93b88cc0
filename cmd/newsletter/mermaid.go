package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/export"
)

func newMermaidCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mermaid",
		Short: "Print the workflow as a Mermaid diagram",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprint(a.stdout, export.WorkflowMermaid())
			return err
		},
	}
}
