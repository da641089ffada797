package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsteiner/grundwerk/internal/assessment"
	"github.com/jsteiner/grundwerk/internal/config"
	"github.com/jsteiner/grundwerk/internal/db"
	"github.com/jsteiner/grundwerk/internal/logging"
	"github.com/jsteiner/grundwerk/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Start the HTTP server exposing properties, assessments, lifecycle phases, renovation estimates and notary workflows as a JSON API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default: GW_PORT or 8080)")

	return cmd
}

func runServe(cmd *cobra.Command, port int) error {
	cfg := config.Load()
	logging.Setup(cfg.DevMode)

	if cfg.CityTablePath != "" {
		if err := assessment.LoadCityTable(cfg.CityTablePath); err != nil {
			return err
		}
	}

	if port == 0 {
		port = cfg.Port
	}

	path := flagDB
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return err
		}
	}

	database, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer closeDB(database)

	srv := web.NewServer(database)

	slog.Info("starting server", "port", port, "db", path)
	return srv.ListenAndServe(port)
}
