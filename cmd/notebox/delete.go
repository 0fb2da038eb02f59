package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [index]",
	Short: "Delete a note",
	Long:  `Delete the note at the given index. Later notes shift down by one.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := parseIndex(args[0])
		if err != nil {
			fatal("Error parsing index", err)
		}

		deleted, err := newClient().Delete(cmd.Context(), index)
		if err != nil {
			fatal("Error deleting note", err)
		}

		result := map[string]bool{"deleted": deleted}
		if err := render(os.Stdout, output, result, func(w io.Writer) {
			if deleted {
				fmt.Fprintf(w, "Deleted note %d\n", index)
			} else {
				fmt.Fprintf(w, "No note at index %d\n", index)
			}
		}); err != nil {
			fatal("Error rendering output", err)
		}
		if !deleted {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
