package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [index]",
	Short: "Replace a note",
	Long:  `Replace both the title and content of the note at the given index.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := parseIndex(args[0])
		if err != nil {
			fatal("Error parsing index", err)
		}

		note, found, err := newClient().Edit(cmd.Context(), index, editTitle, editContent)
		if err != nil {
			fatal("Error editing note", err)
		}
		if !found {
			fmt.Fprintf(os.Stderr, "No note at index %d\n", index)
			os.Exit(1)
		}

		if err := render(os.Stdout, output, note, func(w io.Writer) {
			printNote(w, note)
		}); err != nil {
			fatal("Error rendering output", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
}
