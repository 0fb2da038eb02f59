package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream the caller's change events",
	Long:  `Print every create, modify and delete on the caller's notes until interrupted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := newClient().Watch(ctx)
		if err != nil {
			fatal("Error opening feed", err)
		}

		for event := range events {
			if err := render(os.Stdout, output, event, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s\n", time.Unix(event.Timestamp, 0).Format(time.RFC3339), event)
			}); err != nil {
				fatal("Error rendering output", err)
			}
		}

		if ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "Feed closed by server")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
