// Package cli defines the cobra command tree for grundwerk.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsteiner/grundwerk/internal/db"
	"github.com/jsteiner/grundwerk/internal/property"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gw",
		Short:         "Track development properties from purchase to rental",
		Long:          "A tool to track property development projects. Add properties, score them across energy, yield, HOA and location, walk them through the six lifecycle phases, and manage notary appointments via CLI or HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.grundwerk/projects.db)")

	root.AddCommand(
		newAddCmd(),
		newListCmd(),
		newShowCmd(),
		newRemoveCmd(),
		newAssessCmd(),
		newPhaseCmd(),
		newAdvanceCmd(),
		newEstimateCmd(),
		newNotaryCmd(),
		newSyncCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag or default path.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newPropertyRepo opens the database and wraps it in a property repository.
// The caller owns the returned DB handle.
func newPropertyRepo() (*property.Repository, *sql.DB, error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return property.NewRepository(database), database, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
