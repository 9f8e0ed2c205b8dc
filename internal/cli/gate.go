package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SXPXL/eventflow/internal/gate"
	"github.com/SXPXL/eventflow/internal/model"
)

func newGateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Gate station commands (guard)",
	}
	cmd.AddCommand(newGateCheckinCmd())
	cmd.AddCommand(newGateRosterCmd())
	return cmd
}

// gateEventID resolves the event a guard operates: an explicit flag
// wins, otherwise the event assigned to their account.
func gateEventID(flagID int64) (model.EventID, error) {
	if flagID != 0 {
		return model.EventID(flagID), nil
	}
	user := sess.Staff()
	if user == nil {
		return 0, model.ErrNotLoggedIn
	}
	if user.AssignedEventID == 0 {
		return 0, fmt.Errorf("no --event given and no event assigned to %s", user.Username)
	}
	return user.AssignedEventID, nil
}

func newGateCheckinCmd() *cobra.Command {
	var eventID int64
	var lookupOnly bool

	cmd := &cobra.Command{
		Use:   "checkin <uid>",
		Short: "Scan a UID and record attendance if eligible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gateEventID(eventID)
			if err != nil {
				return err
			}

			station := gate.NewStation(client, id, logger)
			lu, err := station.Scan(cmd.Context(), model.UID(args[0]))
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(lu)

			if lookupOnly || !lu.Verdict.Outcome.Admissible() {
				return nil
			}
			resp, err := station.Confirm(cmd.Context())
			if err != nil {
				return err
			}
			out.PrintMessage(fmt.Sprintf("Checked in %s", resp.UserName))
			return nil
		},
	}

	cmd.Flags().Int64Var(&eventID, "event", 0, "Event ID (defaults to the guard's assigned event)")
	cmd.Flags().BoolVar(&lookupOnly, "lookup-only", false, "Evaluate without recording attendance")

	return cmd
}

func newGateRosterCmd() *cobra.Command {
	var eventID int64

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show an event's registrations grouped by team",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := gateEventID(eventID)
			if err != nil {
				return err
			}

			regs, err := console().Registrations(cmd.Context())
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(gate.GroupByTeam(regs, id))
			return nil
		},
	}

	cmd.Flags().Int64Var(&eventID, "event", 0, "Event ID (defaults to the guard's assigned event)")
	return cmd
}
