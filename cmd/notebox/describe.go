package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebox"
	"github.com/aretw0/notebox/pkg/describe"
)

var describeFormat string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the service interface",
	Long:  `Print the operations of the note service with their arguments, results and HTTP bindings.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := describe.ParseFormat(describeFormat)
		if err != nil {
			fatal("Error parsing format", err)
		}
		iface := describe.Describe(strings.TrimSpace(notebox.Version))
		if err := describe.Encode(os.Stdout, iface, format); err != nil {
			fatal("Error encoding descriptor", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "yaml", "Descriptor format: yaml, json or candid")
}
