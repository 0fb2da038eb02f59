package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the caller's notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		notes, err := newClient().List(cmd.Context())
		if err != nil {
			fatal("Error listing notes", err)
		}

		if err := render(os.Stdout, output, notes, func(w io.Writer) {
			for i, note := range notes {
				fmt.Fprintf(w, "%d - %s\n", i, note.Title)
			}
		}); err != nil {
			fatal("Error rendering output", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
