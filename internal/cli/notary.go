package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsteiner/grundwerk/internal/notary"
	"github.com/jsteiner/grundwerk/internal/property"
)

func newNotaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notary",
		Short: "Manage notary appointments",
		Long:  "Walk a property's notary appointment through its workflow: propose dates, record the customer's choice, confirm with the notary, mark documents prepared, and complete the sale.",
	}

	cmd.AddCommand(
		newNotaryShowCmd(),
		newNotaryProposeCmd(),
		newNotarySelectCmd(),
		newNotaryConfirmCmd(),
		newNotaryDocumentsCmd(),
		newNotaryCompleteCmd(),
	)

	return cmd
}

func newNotaryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the appointment for a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNotaryService(args[0], func(svc *notary.Service, _ *property.Repository, id int64) (*notary.Appointment, error) {
				return svc.Get(cmd.Context(), id)
			})
		},
	}
}

func newNotaryProposeCmd() *cobra.Command {
	var (
		dates   []string
		name    string
		contact string
	)

	cmd := &cobra.Command{
		Use:   "propose <id>",
		Short: "Propose three appointment dates",
		Long:  "Propose exactly three future dates for the notary appointment. Re-proposing is allowed until the customer has selected a date; after that use supersede semantics via the API.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseDates(dates)
			if err != nil {
				return err
			}
			info := notary.NotaryInfo{Name: name, Contact: contact}
			return withNotaryService(args[0], func(svc *notary.Service, props *property.Repository, id int64) (*notary.Appointment, error) {
				p, err := props.GetByID(id)
				if err != nil {
					return nil, err
				}
				return svc.Propose(cmd.Context(), id, notary.ManagedBy(p.SalesChannel), parsed, info)
			})
		},
	}

	cmd.Flags().StringArrayVar(&dates, "date", nil, "proposed date (YYYY-MM-DD or YYYY-MM-DDTHH:MM, repeat three times)")
	cmd.Flags().StringVar(&name, "notary", "", "notary name")
	cmd.Flags().StringVar(&contact, "contact", "", "notary contact details")

	return cmd
}

func newNotarySelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id> <date>",
		Short: "Record the customer's date choice",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[1])
			if err != nil {
				return err
			}
			return withNotaryService(args[0], func(svc *notary.Service, _ *property.Repository, id int64) (*notary.Appointment, error) {
				return svc.Select(cmd.Context(), id, date)
			})
		},
	}
}

func newNotaryConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <id>",
		Short: "Confirm the selected date with the notary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNotaryService(args[0], func(svc *notary.Service, _ *property.Repository, id int64) (*notary.Appointment, error) {
				return svc.Confirm(cmd.Context(), id)
			})
		},
	}
}

func newNotaryDocumentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "documents <id>",
		Short: "Mark contract documents as prepared",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNotaryService(args[0], func(svc *notary.Service, _ *property.Repository, id int64) (*notary.Appointment, error) {
				return svc.MarkDocumentsPrepared(cmd.Context(), id)
			})
		},
	}
}

func newNotaryCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete the notary appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNotaryService(args[0], func(svc *notary.Service, _ *property.Repository, id int64) (*notary.Appointment, error) {
				return svc.Complete(cmd.Context(), id)
			})
		},
	}
}

// withNotaryService parses the property ID, opens the database, runs fn, and
// prints the resulting appointment.
func withNotaryService(arg string, fn func(*notary.Service, *property.Repository, int64) (*notary.Appointment, error)) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid property ID: %s", arg)
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	appt, err := fn(notary.NewService(notary.NewRepository(database)), property.NewRepository(database), id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(appt)
	}

	printAppointment(appt)
	return nil
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// parseDate accepts a date with or without a time of day, interpreted as UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or YYYY-MM-DDTHH:MM", s)
	}
	return t, nil
}

func parseDates(in []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(in))
	for _, s := range in {
		t, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
