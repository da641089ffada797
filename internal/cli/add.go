package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsteiner/grundwerk/internal/property"
)

func newAddCmd() *cobra.Command {
	var (
		city    string
		area    float64
		price   float64
		budget  float64
		rent    float64
		channel string
	)

	cmd := &cobra.Command{
		Use:   "add <address>",
		Short: "Add a property",
		Long:  "Add a development property by address. Financial and energy data can be filled in later with the web UI or API.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &property.Property{
				Address:          strings.Join(args, " "),
				City:             city,
				LivingArea:       area,
				PurchasePrice:    price,
				RenovationBudget: budget,
				SalesChannel:     property.SalesChannel(channel),
			}
			if rent > 0 {
				p.MonthlyRent = &rent
			}
			return runAdd(p)
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city the property is in")
	cmd.Flags().Float64Var(&area, "area", 0, "living area in square meters")
	cmd.Flags().Float64Var(&price, "price", 0, "purchase price in euros")
	cmd.Flags().Float64Var(&budget, "budget", 0, "renovation budget in euros")
	cmd.Flags().Float64Var(&rent, "rent", 0, "expected monthly rent in euros")
	cmd.Flags().StringVar(&channel, "channel", "internal", "sales channel (internal|partner)")

	return cmd
}

func runAdd(p *property.Property) error {
	repo, database, err := newPropertyRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	saved, err := repo.Insert(p)
	if err != nil {
		return fmt.Errorf("adding property: %w", err)
	}

	if isJSON() {
		return printJSON(saved)
	}

	fmt.Println("Property added.")
	printPropertySummary(saved)
	return nil
}
