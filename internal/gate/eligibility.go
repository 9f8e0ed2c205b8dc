// Package gate runs the entry-scan station: it evaluates whether a
// scanned participant may enter an event and records attendance.
package gate

import (
	"github.com/SXPXL/eventflow/internal/model"
)

// Outcome is the verdict for one scan.
type Outcome string

const (
	OutcomeUnknownUID       Outcome = "UNKNOWN_UID"
	OutcomeNotRegistered    Outcome = "NOT_REGISTERED"
	OutcomePaymentPending   Outcome = "PAYMENT_PENDING"
	OutcomeAlreadyCheckedIn Outcome = "ALREADY_CHECKED_IN"
	OutcomeEligible         Outcome = "ELIGIBLE"
)

// Admissible reports whether the outcome permits entry.
func (o Outcome) Admissible() bool { return o == OutcomeEligible }

// Verdict is the full result of evaluating a scan against the roster.
type Verdict struct {
	Outcome      Outcome
	Registration *model.Registration
	TeamName     string
}

// Evaluate decides admission for a participant at a single event.
// Checks run in order and the first failure wins: registration
// existence, then payment, then prior check-in. Registrations are
// matched by event ID so renamed events cannot break admission.
func Evaluate(regs []model.Registration, uid model.UID, eventID model.EventID) Verdict {
	var match *model.Registration
	for i := range regs {
		if regs[i].UserUID == uid && regs[i].EventID == eventID {
			match = &regs[i]
			break
		}
	}
	if match == nil {
		return Verdict{Outcome: OutcomeNotRegistered}
	}
	v := Verdict{Registration: match, TeamName: match.TeamName}
	switch {
	case match.PaymentStatus != model.PaymentPaid:
		v.Outcome = OutcomePaymentPending
	case match.Attended:
		v.Outcome = OutcomeAlreadyCheckedIn
	default:
		v.Outcome = OutcomeEligible
	}
	return v
}
