package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	addTitle   string
	addContent string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a note",
	Long:  `Append a note to the end of the caller's list. Use --content - to read the body from stdin.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		content := addContent
		if content == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			content = string(data)
		}

		ok, err := newClient().Add(cmd.Context(), addTitle, content)
		if err != nil {
			fatal("Error adding note", err)
		}

		result := map[string]bool{"ok": ok}
		if err := render(os.Stdout, output, result, func(w io.Writer) {
			fmt.Fprintln(w, "Note added")
		}); err != nil {
			fatal("Error rendering output", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Note content (- for stdin)")
}
