// Package cli implements the bouncerctl command tree. Commands open the
// SQLite store directly rather than going through the HTTP API, so the tool
// works against a database file without a running server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "bouncerctl",
		Short:         "Entitlement store administration",
		Long:          "Command-line administration for the entitlement store: principals, bundles, features, licenses, and entitlement resolution.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "bouncer.sqlite", "Path to the SQLite store")
	if v := os.Getenv("DB_PATH"); v != "" {
		dbPath = v
	}

	rootCmd.AddCommand(
		newPrincipalCmd(&dbPath),
		newBundleCmd(&dbPath),
		newFeatureCmd(&dbPath),
		newLicenseCmd(&dbPath),
		newEntitlementsCmd(&dbPath),
	)

	return rootCmd
}
