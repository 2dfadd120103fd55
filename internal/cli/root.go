// Package cli implements the blog command line client.
package cli

import (
	"fmt"
	"os"

	"inkwell/pkg/client"

	"github.com/spf13/cobra"
)

var (
	serverURL   string
	sessionPath string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "blog [command] [flags]",
	Short: "blog: command line client for the inkwell API",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&serverURL, "server", envDefault("INKWELL_SERVER", "http://localhost:8080"), "API server base URL")
	RootCmd.PersistentFlags().StringVar(&sessionPath, "session-file", "", "session file path (defaults to the user config dir)")
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newClient builds the API client with the persisted session loaded.
func newClient() (*client.Client, error) {
	store, err := client.NewSessionStore(sessionPath)
	if err != nil {
		return nil, err
	}
	return client.New(serverURL, store)
}
