package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SXPXL/eventflow/internal/cart"
	"github.com/SXPXL/eventflow/internal/checkout"
	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/payment"
)

func newCheckoutCmd() *cobra.Command {
	var uid string
	var solos []int64
	var groups []string
	var mode string
	var cashToken string
	var wait bool

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Stack events and pay for them in one go",
		Long: `checkout builds an event stack and submits it as a single
registration. Solo events are stacked with --solo; group events take
--group "eventID:teamName:name=email,name=email". Online mode prints a
payment URL; cash mode needs a token from a cashier and is only
available on the spot-registration desk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			leaderUID := model.UID(uid)
			if leaderUID == "" {
				leaderUID = sess.ActiveUID()
			}
			if leaderUID == "" {
				return fmt.Errorf("no UID given and none remembered; pass --uid")
			}
			if len(solos) == 0 && len(groups) == 0 {
				return fmt.Errorf("nothing to stack; pass --solo or --group")
			}

			events, err := client.ListEvents(cmd.Context())
			if err != nil {
				return err
			}
			byID := make(map[model.EventID]model.Event, len(events))
			for _, ev := range events {
				byID[ev.ID] = ev
			}

			orch := checkout.New(client, sess, logger)
			stack := cart.New()
			for _, id := range solos {
				ev, ok := byID[model.EventID(id)]
				if !ok {
					return fmt.Errorf("no such event: %d", id)
				}
				if err := stack.Add(ev, nil); err != nil {
					return err
				}
			}
			for _, spec := range groups {
				ev, team, err := parseGroupSpec(byID, spec)
				if err != nil {
					return err
				}
				if err := orch.AddGroupItem(cmd.Context(), leaderUID, stack, ev, team); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(stack.Items())

			result, err := orch.Checkout(cmd.Context(), leaderUID, stack, checkout.Mode(strings.ToUpper(mode)), cashToken)
			if err != nil {
				return err
			}

			if result.Mode == checkout.ModeCash {
				out.PrintMessage(result.Message)
				return nil
			}

			gateway := payment.NewHostedGateway(cfg.GatewayURL, cfg.ReturnURL)
			url, err := gateway.CheckoutURL(*result.Handoff)
			if err != nil {
				return err
			}
			out.PrintMessage("Complete payment at: " + url)
			out.PrintMessage("Order ID: " + result.Handoff.OrderID)

			if wait {
				poller := payment.NewPoller(client, logger)
				poller.Session = sess
				res, err := poller.Poll(cmd.Context(), result.Handoff.OrderID)
				if err != nil {
					return err
				}
				out.Print(res)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "Leader UID (defaults to the remembered one)")
	cmd.Flags().Int64SliceVar(&solos, "solo", nil, "Solo event ID to stack (repeatable)")
	cmd.Flags().StringArrayVar(&groups, "group", nil, `Group entry "eventID:teamName:name=email,..." (repeatable)`)
	cmd.Flags().StringVar(&mode, "mode", "online", "Payment mode: online, cash")
	cmd.Flags().StringVar(&cashToken, "cash-token", "", "Cash token from a cashier (cash mode)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll the order until payment settles")

	return cmd
}

// parseGroupSpec parses "eventID:teamName:name=email,name=email".
// Teammates exclude the leader; the roster may be empty when the event
// minimum allows it.
func parseGroupSpec(byID map[model.EventID]model.Event, spec string) (model.Event, cart.TeamEntry, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return model.Event{}, cart.TeamEntry{}, fmt.Errorf("bad group spec %q, want eventID:teamName:name=email,...", spec)
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return model.Event{}, cart.TeamEntry{}, fmt.Errorf("bad event ID in group spec %q", spec)
	}
	ev, ok := byID[model.EventID(id)]
	if !ok {
		return model.Event{}, cart.TeamEntry{}, fmt.Errorf("no such event: %d", id)
	}

	team := cart.TeamEntry{Name: parts[1]}
	if len(parts) == 3 && parts[2] != "" {
		for _, mate := range strings.Split(parts[2], ",") {
			name, email, found := strings.Cut(mate, "=")
			if !found {
				return model.Event{}, cart.TeamEntry{}, fmt.Errorf("bad teammate %q, want name=email", mate)
			}
			team.Teammates = append(team.Teammates, model.Teammate{
				Name:  strings.TrimSpace(name),
				Email: strings.TrimSpace(email),
			})
		}
	}
	return ev, team, nil
}

func newPayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Payment commands",
	}
	cmd.AddCommand(newPayStatusCmd())
	return cmd
}

func newPayStatusCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "status <order-id>",
		Short: "Check (or wait for) an order's payment status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if !wait {
				order, err := client.PaymentStatus(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out.Print(payment.PollResult{Status: statusFor(order), Order: order})
				return nil
			}

			poller := payment.NewPoller(client, logger)
			poller.Session = sess
			res, err := poller.Poll(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out.Print(res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until the order settles or times out")
	return cmd
}

func statusFor(order *model.PaymentOrder) payment.Status {
	switch {
	case order.Status == model.OrderPaid:
		return payment.StatusPaid
	case order.Status.Failed():
		return payment.StatusFailed
	default:
		return payment.StatusVerifying
	}
}
