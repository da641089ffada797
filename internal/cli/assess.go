package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsteiner/grundwerk/internal/assessment"
)

func newAssessCmd() *cobra.Command {
	var (
		market  float64
		cities  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "assess <id>",
		Short: "Score a property",
		Long:  "Compute the four category scores (energy, yield, HOA, location) and the overall verdict for a property.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cities != "" {
				if err := assessment.LoadCityTable(cities); err != nil {
					return err
				}
			}
			var marketPtr *float64
			if cmd.Flags().Changed("market") {
				marketPtr = &market
			}
			return runAssess(args[0], marketPtr, preview)
		},
	}

	cmd.Flags().Float64Var(&market, "market", 0, "market comparison score (0-10)")
	cmd.Flags().StringVar(&cities, "cities", "", "YAML city table overriding built-in market data")
	cmd.Flags().BoolVar(&preview, "preview", false, "use the reduced two-factor HOA scoring")

	return cmd
}

func runAssess(arg string, market *float64, preview bool) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid property ID: %s", arg)
	}

	repo, database, err := newPropertyRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	p, err := repo.GetByID(id)
	if err != nil {
		return err
	}

	scores, err := assessment.ComputeCategoryScores(p.Snapshot(), assessment.Inputs{
		MarketComparison: market,
		HOAPreview:       preview,
	})
	if err != nil {
		return err
	}
	overall := assessment.AggregateAssessment(scores)

	if isJSON() {
		return printJSON(map[string]interface{}{
			"scores":  scores,
			"overall": overall,
		})
	}

	fmt.Printf("Assessment for %s\n\n", p.Address)
	printAssessment(scores, overall)
	return nil
}
