// Package catalog shapes the participant dashboard: who the active
// participant is, what they have already paid for, and what is still
// open to them.
package catalog

import (
	"context"
	"log/slog"

	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/portal"
)

// Dashboard is everything the participant view needs in one fetch
type Dashboard struct {
	Participant model.Participant
	Registered  []model.RegisteredEvent
	Available   []model.Event
}

// Service computes dashboard data from the portal
type Service struct {
	client *portal.Client
	logger *slog.Logger
}

// New creates a catalog service
func New(client *portal.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Dashboard resolves the participant and splits the catalog into
// registered and available lists. Available is the full catalog minus
// paid registrations and hidden events, so an event never appears in
// both lists.
func (s *Service) Dashboard(ctx context.Context, uid model.UID) (*Dashboard, error) {
	lookup, err := s.client.CheckUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !lookup.Exists || lookup.Participant == nil {
		return nil, model.ErrParticipantNotFound
	}

	events, err := s.client.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	paid := make(map[model.EventID]bool, len(lookup.Registered))
	for _, reg := range lookup.Registered {
		if reg.PaymentStatus == model.PaymentPaid {
			paid[reg.ID] = true
		}
	}

	available := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.Hidden || paid[ev.ID] {
			continue
		}
		available = append(available, ev)
	}

	s.logger.Debug("dashboard loaded",
		slog.String("uid", string(uid)),
		slog.Int("registered", len(lookup.Registered)),
		slog.Int("available", len(available)))

	return &Dashboard{
		Participant: *lookup.Participant,
		Registered:  lookup.Registered,
		Available:   available,
	}, nil
}
