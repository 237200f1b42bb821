package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(c *cli) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.core.Detail.Save(ctxOf(cmd), "", title, content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "Note content")
	return cmd
}

func newEditCmd(c *cli) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title and/or content of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			current, err := c.core.Detail.Open(ctx, args[0])
			if err != nil {
				return err
			}
			// flags left unset keep the stored value
			if !cmd.Flags().Changed("title") {
				title = current.Title
			}
			if !cmd.Flags().Changed("content") {
				content = current.Content
			}

			n, err := c.core.Detail.Save(ctx, current.ID, title, content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s\n", n.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content")
	return cmd
}

func newQuickCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "quick <title> [content]",
		Short: "Create a note from a title alone",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := ""
			if len(args) == 2 {
				content = args[1]
			}
			n, err := c.core.List.QuickNote(ctxOf(cmd), args[0], content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.ID)
			return nil
		},
	}
}

func newDupCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dup <id>",
		Short: "Duplicate a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.core.List.Duplicate(ctxOf(cmd), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.ID, n.Title)
			return nil
		},
	}
}

func newRmCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.core.List.Delete(ctxOf(cmd), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s\n", args[0])
			return nil
		},
	}
}
