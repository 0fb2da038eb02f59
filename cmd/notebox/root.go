package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebox/pkg/auth"
	"github.com/aretw0/notebox/pkg/client"
	"github.com/aretw0/notebox/pkg/core"
)

var (
	verbose      bool
	serverURL    string
	principal    string
	principalHdr string
	token        string
	output       string
)

// logLevel is shared with serve so a config reload can change it at runtime.
var logLevel = new(slog.LevelVar)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notebox",
	Short: "A per-principal note store served over HTTP",
	Long: `Notebox keeps an ordered list of notes for every caller.
Run "notebox serve" to start a server, then use the other commands as a client.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logLevel.Set(slog.LevelDebug)
		}
		slog.SetDefault(newLogger(os.Stderr, "text", logLevel))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("NOTEBOX_SERVER", "http://localhost:8080"), "Notebox server URL")
	rootCmd.PersistentFlags().StringVarP(&principal, "principal", "p", os.Getenv("NOTEBOX_PRINCIPAL"), "Principal to act as (header auth)")
	rootCmd.PersistentFlags().StringVar(&principalHdr, "principal-header", auth.DefaultHeader, "Header carrying the principal")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("NOTEBOX_TOKEN"), "Bearer token (jwt auth)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
}

func newLogger(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newClient() *client.Client {
	var opts []client.Option
	if principal != "" {
		opts = append(opts, client.WithPrincipal(core.Principal(principal), principalHdr))
	}
	if token != "" {
		opts = append(opts, client.WithToken(token))
	}
	return client.New(serverURL, opts...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
