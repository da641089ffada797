package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsteiner/grundwerk/internal/renovation"
)

func newEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <area> <trade>...",
		Short: "Estimate a renovation budget",
		Long:  "Estimate renovation costs for a living area and a set of trades (electrical, plumbing, painting, flooring, kitchen, bathroom, roofing, windows, heating, facade).",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runEstimate,
	}
}

func runEstimate(cmd *cobra.Command, args []string) error {
	area, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid living area: %s", args[0])
	}

	trades := make([]renovation.Trade, 0, len(args)-1)
	for _, a := range args[1:] {
		trades = append(trades, renovation.Trade(a))
	}

	est, err := renovation.EstimateBudget(trades, area)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(est)
	}

	printEstimate(est, area)
	return nil
}
