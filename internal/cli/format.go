package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jsteiner/grundwerk/internal/assessment"
	"github.com/jsteiner/grundwerk/internal/notary"
	"github.com/jsteiner/grundwerk/internal/phase"
	"github.com/jsteiner/grundwerk/internal/property"
	"github.com/jsteiner/grundwerk/internal/renovation"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single property summary in text format.
func printPropertySummary(p *property.Property) {
	fmt.Printf("Property #%d\n", p.ID)
	fmt.Printf("  Address:  %s\n", p.Address)
	if p.City != "" {
		fmt.Printf("  City:     %s\n", p.City)
	}
	if p.LivingArea > 0 {
		fmt.Printf("  Area:     %.1f m²\n", p.LivingArea)
	}
	if p.PurchasePrice > 0 {
		fmt.Printf("  Price:    %s €\n", formatEuro(p.PurchasePrice))
	}
	if p.RenovationBudget > 0 {
		fmt.Printf("  Budget:   %s €\n", formatEuro(p.RenovationBudget))
	}
	if p.MonthlyRent != nil {
		fmt.Printf("  Rent:     %s €/month\n", formatEuro(*p.MonthlyRent))
	}
	if len(p.RoomRents) > 0 {
		fmt.Printf("  Rooms:    %d rented separately\n", len(p.RoomRents))
	}
	if p.EnergyClass != nil {
		fmt.Printf("  Energy:   class %s\n", *p.EnergyClass)
	}
	if p.ConstructionYear != nil {
		fmt.Printf("  Built:    %d\n", *p.ConstructionYear)
	}
	fmt.Printf("  Phase:    %d (%s)\n", p.CurrentPhase, phase.Phases[p.CurrentPhase-1].Name)
	fmt.Printf("  Channel:  %s\n", p.SalesChannel)
}

// printPropertyTable prints a list of properties as a formatted table.
func printPropertyTable(props []*property.Property) error {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tADDRESS\tCITY\tAREA\tPRICE\tPHASE\tCHANNEL"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-------\t----\t----\t-----\t-----\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		area := "-"
		if p.LivingArea > 0 {
			area = fmt.Sprintf("%.0f m²", p.LivingArea)
		}
		price := "-"
		if p.PurchasePrice > 0 {
			price = formatEuro(p.PurchasePrice) + " €"
		}

		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d/6\t%s\n",
			p.ID, truncate(p.Address, 40), p.City, area, price, p.CurrentPhase, p.SalesChannel); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d properties\n", len(props))
	return nil
}

// printAssessment prints the category scores and overall verdict.
func printAssessment(scores []assessment.CategoryScore, overall assessment.OverallAssessment) {
	for _, s := range scores {
		fmt.Printf("%s %-10s %.1f / %.0f\n", statusIcon(s.Status), s.Category, s.WeightedScore, s.MaxWeightedScore)
		for _, f := range s.Factors {
			raw := f.RawValue
			if raw == "" {
				raw = "-"
			}
			fmt.Printf("    %-22s %5.1f × %.2f  (%s)\n", f.Name, f.Score, f.Weight, raw)
		}
	}
	fmt.Printf("\nVerdict: %s (%d green, %d yellow, %d red)\n",
		overall.Verdict, overall.GreenCount, overall.YellowCount, overall.RedCount)
}

// printPhaseState prints the lifecycle view with per-phase markers.
func printPhaseState(state phase.State, daysIn int) {
	fmt.Printf("Lifecycle: phase %d of %d (%.0f%%), %d days in current phase\n",
		state.Current, phase.Count, state.Progress(), daysIn)
	for _, ps := range state.Phases {
		marker := " "
		switch ps.Status {
		case phase.StatusCompleted:
			marker = "✓"
		case phase.StatusActive:
			marker = ">"
		}
		fmt.Printf("  %s %d. %-18s %d days planned\n", marker, ps.Phase.Number, ps.Phase.Name, ps.Phase.PlannedDays)
	}
}

// printEstimate prints a renovation estimate breakdown.
func printEstimate(est renovation.Estimate, area float64) {
	if !est.Reliable {
		fmt.Println("No living area given; estimate is not reliable.")
		return
	}
	for _, tc := range est.PerTrade {
		fmt.Printf("  %-12s %4.0f €/m² × %.1f m² = %s €\n", tc.Trade, tc.Rate, area, formatEuro(tc.Cost))
	}
	fmt.Printf("\nTotal: %s €\n", formatEuro(est.Total))
}

// printAppointment prints a notary appointment in text format.
func printAppointment(a *notary.Appointment) {
	fmt.Printf("Appointment for property #%d\n", a.PropertyID)
	fmt.Printf("  Status:   %s\n", a.Status)
	fmt.Printf("  Managed:  %s\n", a.ManagedBy)
	if a.NotaryName != "" {
		fmt.Printf("  Notary:   %s\n", a.NotaryName)
	}
	for i, d := range a.ProposedDates {
		fmt.Printf("  Option %d: %s\n", i+1, d.Format("2006-01-02 15:04"))
	}
	if a.SelectedDate != nil {
		fmt.Printf("  Selected: %s\n", a.SelectedDate.Format("2006-01-02 15:04"))
	}
	if a.ConfirmedDate != nil {
		fmt.Printf("  Confirmed: %s\n", a.ConfirmedDate.Format("2006-01-02 15:04"))
	}
	if a.DocumentsPrepared {
		fmt.Println("  Documents prepared")
	}
	if a.SyncedAt != nil {
		fmt.Printf("  Synced:   %s\n", a.SyncedAt.Format("2006-01-02 15:04"))
	}
}

// statusIcon maps a traffic light to a terminal marker.
func statusIcon(s assessment.Status) string {
	switch s {
	case assessment.StatusGreen:
		return "●"
	case assessment.StatusYellow:
		return "◐"
	default:
		return "○"
	}
}

// formatEuro formats an amount with thousands separators, dropping cents.
func formatEuro(amount float64) string {
	s := fmt.Sprintf("%.0f", amount)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ".")
	}
	if neg {
		return "-" + s
	}
	return s
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
