package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsteiner/grundwerk/internal/phase"
)

func newPhaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phase <id>",
		Short: "Show a property's lifecycle position",
		Long:  "Show the six lifecycle phases for a property with each phase marked completed, active or pending.",
		Args:  cobra.ExactArgs(1),
		RunE:  runPhase,
	}
}

func runPhase(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid property ID: %s", args[0])
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

	state, err := phase.DeriveState(p.CurrentPhase)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(state)
	}

	printPhaseState(state, phase.DaysIn(p.PhaseEnteredAt, time.Now()))
	return nil
}

func newAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <id> <phase>",
		Short: "Advance a property to a later phase",
		Long:  "Move a property forward to the given phase (1-6) and record the transition. The lifecycle never moves backwards.",
		Args:  cobra.ExactArgs(2),
		RunE:  runAdvance,
	}
}

func runAdvance(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid property ID: %s", args[0])
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid phase number: %s", args[1])
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	tr, err := phase.NewRepository(database).Advance(id, to)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(tr)
	}

	fmt.Printf("Property #%d advanced to phase %d (%s).\n", id, tr.Phase, phase.Phases[tr.Phase-1].Name)
	return nil
}
