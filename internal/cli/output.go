package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/SXPXL/eventflow/internal/cart"
	"github.com/SXPXL/eventflow/internal/catalog"
	"github.com/SXPXL/eventflow/internal/gate"
	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/payment"
	"github.com/SXPXL/eventflow/internal/portal"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *catalog.Dashboard:
		o.printDashboard(v)
	case []model.Event:
		o.printEvents(v)
	case []model.Participant:
		o.printParticipants(v)
	case []model.StaffUser:
		o.printStaff(v)
	case *model.CashToken:
		fmt.Printf("Cash token: %s (covers %.2f)\n", v.Token, v.Amount)
	case []cart.Item:
		o.printCart(v)
	case *gate.Lookup:
		o.printLookup(v)
	case []gate.TeamGroup:
		o.printRoster(v)
	case payment.PollResult:
		o.printPollResult(v)
	case *portal.WalkInResponse:
		o.printWalkIn(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printDashboard(d *catalog.Dashboard) {
	p := d.Participant
	fmt.Printf("%s (%s)\n", p.Name, p.UID)
	if p.College != "" {
		fmt.Println(p.College)
	}
	if len(d.Registered) > 0 {
		fmt.Println("\nRegistered:")
		for _, re := range d.Registered {
			fmt.Printf("  %-30s %s\n", re.Name, re.PaymentStatus)
		}
	}
	if len(d.Available) > 0 {
		fmt.Println("\nAvailable:")
		o.printEvents(d.Available)
	}
}

func (o *Output) printEvents(events []model.Event) {
	for _, ev := range events {
		line := fmt.Sprintf("  [%d] %-30s %-5s %8.2f", ev.ID, ev.Name, ev.Type, ev.Fee)
		if ev.Type == model.EventGroup {
			line += fmt.Sprintf("  team %d-%d", ev.MinTeamSize, ev.MaxTeamSize)
		}
		fmt.Println(line)
	}
}

func (o *Output) printParticipants(ps []model.Participant) {
	for _, p := range ps {
		marker := ""
		if p.IsShadow {
			marker = " (incomplete profile)"
		}
		fmt.Printf("  %s  %-25s %s%s\n", p.UID, p.Name, p.Email, marker)
	}
}

func (o *Output) printStaff(staff []model.StaffUser) {
	for _, u := range staff {
		line := fmt.Sprintf("  [%d] %-20s %s", u.ID, u.Username, u.Role)
		if u.AssignedEventID != 0 {
			line += fmt.Sprintf("  event %d", u.AssignedEventID)
		}
		fmt.Println(line)
	}
}

func (o *Output) printCart(items []cart.Item) {
	var total float64
	for _, it := range items {
		line := fmt.Sprintf("  %-30s %8.2f", it.EventName, it.Fee)
		if it.Team != nil {
			line += "  team: " + it.Team.Name
		}
		fmt.Println(line)
		total += it.Fee
	}
	fmt.Printf("  %-30s %8.2f\n", "Total", total)
}

func (o *Output) printLookup(lu *gate.Lookup) {
	v := lu.Verdict
	fmt.Printf("%s: %s\n", lu.UID, v.Outcome)
	if lu.Participant != nil {
		fmt.Printf("  %s\n", lu.Participant.Name)
	}
	if v.TeamName != "" {
		fmt.Printf("  team: %s\n", v.TeamName)
	}
}

func (o *Output) printRoster(groups []gate.TeamGroup) {
	for _, g := range groups {
		fmt.Printf("%s\n", g.Name)
		for _, m := range g.Members {
			status := string(m.PaymentStatus)
			if m.Attended {
				status += ", present"
			}
			fmt.Printf("  %-25s %s  (%s)\n", m.UserName, m.UserUID, status)
		}
	}
}

func (o *Output) printPollResult(res payment.PollResult) {
	switch res.Status {
	case payment.StatusPaid:
		fmt.Println("Payment confirmed.")
	case payment.StatusFailed:
		fmt.Println("Payment failed or was cancelled.")
	case payment.StatusTimedOut:
		fmt.Println("Still waiting on the gateway. Check again shortly.")
	default:
		fmt.Println("Verifying payment...")
	}
	if res.Order != nil {
		fmt.Printf("  order %s: %s (%.2f)\n", res.Order.OrderID, res.Order.Status, res.Order.Amount)
	}
}

func (o *Output) printWalkIn(resp *portal.WalkInResponse) {
	fmt.Printf("Collected %.2f\n", resp.Data.TotalPaid)
	for _, p := range resp.Data.Participants {
		fmt.Printf("  %-10s %-25s %s\n", strings.ToUpper(p.Role), p.Name, p.UID)
	}
}
