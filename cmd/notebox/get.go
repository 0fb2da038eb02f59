package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [index]",
	Short: "Read a note",
	Long:  `Read the note at the given zero-based index. Exits with status 1 when it does not exist.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := parseIndex(args[0])
		if err != nil {
			fatal("Error parsing index", err)
		}

		note, found, err := newClient().Get(cmd.Context(), index)
		if err != nil {
			fatal("Error reading note", err)
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
	rootCmd.AddCommand(getCmd)
}

