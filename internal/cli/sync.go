package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsteiner/grundwerk/internal/config"
	"github.com/jsteiner/grundwerk/internal/notary"
	"github.com/jsteiner/grundwerk/internal/partner"
)

func newSyncCmd() *cobra.Command {
	var feedURL string

	cmd := &cobra.Command{
		Use:   "sync <id>",
		Short: "Pull partner appointment state",
		Long:  "Fetch the notary appointment for a partner-managed property from the partner feed and store it locally. The feed is one-way; local state is overwritten.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, args[0], feedURL)
		},
	}

	cmd.Flags().StringVar(&feedURL, "feed", "", "partner feed base URL (default: GW_PARTNER_FEED_URL)")

	return cmd
}

func runSync(cmd *cobra.Command, arg, feedURL string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid property ID: %s", arg)
	}

	cfg := config.Load()
	if feedURL == "" {
		feedURL = cfg.PartnerFeedURL
	}

	client, err := partner.NewClient(feedURL, cfg.PartnerAPIKey)
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	syncer := partner.NewSyncer(client, notary.NewService(notary.NewRepository(database)))
	appt, err := syncer.SyncProperty(cmd.Context(), id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(appt)
	}

	fmt.Printf("Synced appointment for property #%d.\n", id)
	printAppointment(appt)
	return nil
}
