package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		filter   string
		listJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := c.core.List.Load(ctxOf(cmd), filter)
			if err != nil {
				return err
			}

			if listJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(notes)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, n := range notes {
				fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.CreatedAt.Local().Format(time.DateTime), n.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only notes whose title or content contains this text")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	return cmd
}
