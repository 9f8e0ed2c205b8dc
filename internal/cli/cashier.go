package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/portal"
)

func newCashierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cashier",
		Short: "Cash desk commands",
	}
	cmd.AddCommand(newCashierTokenCmd())
	return cmd
}

func newCashierTokenCmd() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a cash token after collecting payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := console().GenerateToken(cmd.Context(), amount)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(tok)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Cash amount collected (required)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newWalkinCmd() *cobra.Command {
	var eventID int64
	var name, email, phone, college string
	var members []string

	cmd := &cobra.Command{
		Use:   "walkin",
		Short: "Register an on-site participant or team in one step",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := client.ListEvents(cmd.Context())
			if err != nil {
				return err
			}
			var event *model.Event
			for i := range events {
				if events[i].ID == model.EventID(eventID) {
					event = &events[i]
					break
				}
			}
			if event == nil {
				return fmt.Errorf("no such event: %d", eventID)
			}

			req := portal.WalkInRequest{
				Name:    name,
				Email:   email,
				Phone:   phone,
				College: college,
			}
			for _, m := range members {
				mName, mEmail, found := strings.Cut(m, "=")
				if !found {
					return fmt.Errorf("bad member %q, want name=email", m)
				}
				req.Members = append(req.Members, model.Teammate{
					Name:  strings.TrimSpace(mName),
					Email: strings.TrimSpace(mEmail),
				})
			}

			resp, err := console().WalkIn(cmd.Context(), *event, req)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(resp)
			return nil
		},
	}

	cmd.Flags().Int64Var(&eventID, "event", 0, "Event ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Participant name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Participant email (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&college, "college", "", "College name")
	cmd.Flags().StringArrayVar(&members, "member", nil, `Team member "name=email" (repeatable)`)
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
