package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsteiner/grundwerk/internal/property"
)

func newListCmd() *cobra.Command {
	var (
		phaseFilter int
		channel     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all properties",
		Long:  "List all tracked properties, optionally filtered by lifecycle phase or sales channel.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(phaseFilter, channel)
		},
	}

	cmd.Flags().IntVar(&phaseFilter, "phase", 0, "only properties in this phase (1-6)")
	cmd.Flags().StringVar(&channel, "channel", "", "only properties in this sales channel (internal|partner)")

	return cmd
}

func runList(phaseFilter int, channel string) error {
	repo, database, err := newPropertyRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	opts := property.ListOptions{}
	if phaseFilter > 0 {
		opts.Phase = &phaseFilter
	}
	if channel != "" {
		if !property.ValidSalesChannel(channel) {
			return fmt.Errorf("invalid sales channel: %s", channel)
		}
		opts.SalesChannel = property.SalesChannel(channel)
	}

	props, err := repo.List(opts)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(props)
	}

	return printPropertyTable(props)
}
