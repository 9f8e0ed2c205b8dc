package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SXPXL/eventflow/internal/dependencies/mocks"
	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/portal"
	"github.com/SXPXL/eventflow/internal/portaltest"
	"github.com/SXPXL/eventflow/internal/session"
	"github.com/SXPXL/eventflow/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	backend *portaltest.Server
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.backend = portaltest.New()
	s.T().Cleanup(s.backend.Close)

	sess, err := session.Open(filepath.Join(s.T().TempDir(), "session.json"), mocks.NewMockClock(time.Now()))
	s.Require().NoError(err)

	client := portal.New(s.backend.URL(), sess, testutil.NopLogger())
	s.service = New(client, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestUnknownUIDReturnsNotFound() {
	_, err := s.service.Dashboard(s.ctx, "EVT-99999")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *ServiceSuite) TestFreshParticipantSeesWholeCatalog() {
	s.backend.AddEvent(model.Event{Name: "Chess", Type: model.EventSolo, Fee: 50})
	s.backend.AddEvent(model.Event{Name: "Robotics", Type: model.EventGroup, Fee: 200, MinTeamSize: 2, MaxTeamSize: 5})
	p := s.backend.AddParticipant(model.Participant{Name: "Ann", Email: "ann@example.com"})

	dash, err := s.service.Dashboard(s.ctx, p.UID)
	s.Require().NoError(err)

	s.Equal("Ann", dash.Participant.Name)
	s.Empty(dash.Registered)
	s.Len(dash.Available, 2)
}

func (s *ServiceSuite) TestPaidRegistrationLeavesAvailable() {
	chess := s.backend.AddEvent(model.Event{Name: "Chess", Type: model.EventSolo, Fee: 50})
	quiz := s.backend.AddEvent(model.Event{Name: "Quiz", Type: model.EventSolo, Fee: 30})
	p := s.backend.AddParticipant(model.Participant{Name: "Ann", Email: "ann@example.com"})
	s.backend.AddRegistration(model.Registration{
		UserUID: p.UID, EventID: chess.ID, PaymentStatus: model.PaymentPaid,
	})

	dash, err := s.service.Dashboard(s.ctx, p.UID)
	s.Require().NoError(err)

	s.Require().Len(dash.Registered, 1)
	s.Equal(chess.ID, dash.Registered[0].ID)
	s.Require().Len(dash.Available, 1)
	s.Equal(quiz.ID, dash.Available[0].ID)
}

func (s *ServiceSuite) TestPendingRegistrationStaysAvailable() {
	chess := s.backend.AddEvent(model.Event{Name: "Chess", Type: model.EventSolo, Fee: 50})
	p := s.backend.AddParticipant(model.Participant{Name: "Ann", Email: "ann@example.com"})
	s.backend.AddRegistration(model.Registration{
		UserUID: p.UID, EventID: chess.ID, PaymentStatus: model.PaymentPending,
	})

	dash, err := s.service.Dashboard(s.ctx, p.UID)
	s.Require().NoError(err)

	// An unpaid registration shows up but does not consume the slot
	s.Len(dash.Registered, 1)
	s.Len(dash.Available, 1)
}

func (s *ServiceSuite) TestHiddenEventsExcluded() {
	s.backend.AddEvent(model.Event{Name: "Chess", Type: model.EventSolo, Fee: 50})
	s.backend.AddEvent(model.Event{Name: "Secret", Type: model.EventSolo, Fee: 10, Hidden: true})
	p := s.backend.AddParticipant(model.Participant{Name: "Ann", Email: "ann@example.com"})

	dash, err := s.service.Dashboard(s.ctx, p.UID)
	s.Require().NoError(err)

	s.Require().Len(dash.Available, 1)
	s.Equal("Chess", dash.Available[0].Name)
}
