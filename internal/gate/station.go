package gate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/portal"
)

// Portal is the slice of the portal client the station needs.
type Portal interface {
	CheckUID(ctx context.Context, uid model.UID) (*portal.CheckUIDResponse, error)
	ListRegistrations(ctx context.Context) ([]model.Registration, error)
	MarkAttendance(ctx context.Context, req portal.MarkAttendanceRequest) (*portal.MarkAttendanceResponse, error)
}

// Lookup is one evaluated scan, held until the guard confirms or
// cancels it.
type Lookup struct {
	UID         model.UID
	Participant *model.Participant
	Verdict     Verdict
}

// Station is a gate for a single event. It serializes scans: a lookup
// must be confirmed or cancelled before the result can be acted on
// again, and the whole station can be paused between entry waves.
type Station struct {
	portal  Portal
	logger  *slog.Logger
	eventID model.EventID

	mu       sync.Mutex
	paused   bool
	pending  *Lookup
	admitted int
}

func NewStation(p Portal, eventID model.EventID, logger *slog.Logger) *Station {
	return &Station{portal: p, logger: logger, eventID: eventID}
}

func (s *Station) EventID() model.EventID { return s.eventID }

// Admitted reports how many participants this station has checked in.
func (s *Station) Admitted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admitted
}

// Pause stops the station from accepting scans.
func (s *Station) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
	s.pending = nil
}

// Resume reopens the station.
func (s *Station) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

func (s *Station) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Scan resolves a UID against the portal and evaluates admission for
// the station's event. The verdict is held as pending so Confirm can
// act on exactly what the guard saw.
func (s *Station) Scan(ctx context.Context, uid model.UID) (*Lookup, error) {
	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return nil, model.ErrStationPaused
	}
	s.mu.Unlock()

	check, err := s.portal.CheckUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	lu := &Lookup{UID: uid}
	if !check.Exists {
		lu.Verdict = Verdict{Outcome: OutcomeUnknownUID}
	} else {
		lu.Participant = check.Participant
		regs, err := s.portal.ListRegistrations(ctx)
		if err != nil {
			return nil, err
		}
		lu.Verdict = Evaluate(regs, uid, s.eventID)
	}

	s.mu.Lock()
	s.pending = lu
	s.mu.Unlock()

	s.logger.Debug("gate scan evaluated",
		"uid", uid, "event_id", s.eventID, "outcome", lu.Verdict.Outcome)
	return lu, nil
}

// Confirm records attendance for the pending eligible lookup.
func (s *Station) Confirm(ctx context.Context) (*portal.MarkAttendanceResponse, error) {
	s.mu.Lock()
	lu := s.pending
	s.mu.Unlock()
	if lu == nil || !lu.Verdict.Outcome.Admissible() {
		return nil, model.ErrNoEligibleLookup
	}

	resp, err := s.portal.MarkAttendance(ctx, portal.MarkAttendanceRequest{
		UserUID: lu.UID,
		EventID: s.eventID,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pending = nil
	s.admitted++
	s.mu.Unlock()

	s.logger.Info("participant checked in", "uid", lu.UID, "event_id", s.eventID)
	return resp, nil
}

// Cancel discards the pending lookup without recording anything.
func (s *Station) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}
