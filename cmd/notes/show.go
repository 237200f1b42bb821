package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.core.Detail.Open(ctxOf(cmd), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", n.Title)
			fmt.Fprintf(out, "%s\n\n", n.CreatedAt.Local().Format(time.RFC1123))
			fmt.Fprintln(out, n.Content)
			return nil
		},
	}
}

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Upload a JSON snapshot of all notes and print a download link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.core.Exporter.Export(ctxOf(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n%s\n", res.Count, res.Key, res.URL)
			return nil
		},
	}
}
