package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/portal"
	"github.com/SXPXL/eventflow/internal/testutil"
)

// fakePortal serves canned participants and registrations
type fakePortal struct {
	participants map[model.UID]*model.Participant
	regs         []model.Registration
	marked       []portal.MarkAttendanceRequest
	markErr      error
}

func newFakePortal() *fakePortal {
	return &fakePortal{participants: make(map[model.UID]*model.Participant)}
}

func (f *fakePortal) CheckUID(ctx context.Context, uid model.UID) (*portal.CheckUIDResponse, error) {
	p, ok := f.participants[uid]
	if !ok {
		return &portal.CheckUIDResponse{Exists: false}, nil
	}
	return &portal.CheckUIDResponse{Exists: true, Participant: p}, nil
}

func (f *fakePortal) ListRegistrations(ctx context.Context) ([]model.Registration, error) {
	return f.regs, nil
}

func (f *fakePortal) MarkAttendance(ctx context.Context, req portal.MarkAttendanceRequest) (*portal.MarkAttendanceResponse, error) {
	if f.markErr != nil {
		return nil, f.markErr
	}
	f.marked = append(f.marked, req)
	return &portal.MarkAttendanceResponse{Message: "attendance marked", UserName: string(req.UserUID)}, nil
}

type StationSuite struct {
	suite.Suite
	portal  *fakePortal
	station *Station
	ctx     context.Context
}

func TestStationSuite(t *testing.T) {
	suite.Run(t, new(StationSuite))
}

const gateEvent = model.EventID(7)

func (s *StationSuite) SetupTest() {
	s.portal = newFakePortal()
	s.station = NewStation(s.portal, gateEvent, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *StationSuite) addPaidRegistration(uid model.UID, eventID model.EventID) {
	s.portal.participants[uid] = &model.Participant{UID: uid, Name: "Ann"}
	s.portal.regs = append(s.portal.regs, model.Registration{
		UserUID: uid, EventID: eventID, PaymentStatus: model.PaymentPaid,
	})
}

// Scan tests

func (s *StationSuite) TestScanUnknownUID() {
	lu, err := s.station.Scan(s.ctx, "EVT-00404")
	s.Require().NoError(err)
	s.Equal(OutcomeUnknownUID, lu.Verdict.Outcome)
}

func (s *StationSuite) TestScanEligibleParticipant() {
	s.addPaidRegistration("EVT-00001", gateEvent)

	lu, err := s.station.Scan(s.ctx, "EVT-00001")
	s.Require().NoError(err)
	s.Equal(OutcomeEligible, lu.Verdict.Outcome)
	s.Equal("Ann", lu.Participant.Name)
}

func (s *StationSuite) TestScanWhilePausedRejected() {
	s.station.Pause()
	_, err := s.station.Scan(s.ctx, "EVT-00001")
	s.ErrorIs(err, model.ErrStationPaused)

	s.station.Resume()
	_, err = s.station.Scan(s.ctx, "EVT-00001")
	s.NoError(err)
}

// Confirm tests

func (s *StationSuite) TestConfirmRecordsAttendance() {
	s.addPaidRegistration("EVT-00001", gateEvent)

	_, err := s.station.Scan(s.ctx, "EVT-00001")
	s.Require().NoError(err)

	resp, err := s.station.Confirm(s.ctx)
	s.Require().NoError(err)
	s.Equal("attendance marked", resp.Message)

	s.Require().Len(s.portal.marked, 1)
	s.Equal(gateEvent, s.portal.marked[0].EventID)
	s.Equal(1, s.station.Admitted())
}

func (s *StationSuite) TestConfirmWithoutScanRejected() {
	_, err := s.station.Confirm(s.ctx)
	s.ErrorIs(err, model.ErrNoEligibleLookup)
}

func (s *StationSuite) TestConfirmIneligibleLookupRejected() {
	s.portal.participants["EVT-00001"] = &model.Participant{UID: "EVT-00001", Name: "Ann"}

	_, err := s.station.Scan(s.ctx, "EVT-00001")
	s.Require().NoError(err)

	_, err = s.station.Confirm(s.ctx)
	s.ErrorIs(err, model.ErrNoEligibleLookup)
	s.Empty(s.portal.marked)
}

func (s *StationSuite) TestConfirmConsumesLookup() {
	s.addPaidRegistration("EVT-00001", gateEvent)

	_, err := s.station.Scan(s.ctx, "EVT-00001")
	s.Require().NoError(err)
	_, err = s.station.Confirm(s.ctx)
	s.Require().NoError(err)

	_, err = s.station.Confirm(s.ctx)
	s.ErrorIs(err, model.ErrNoEligibleLookup)
}

func (s *StationSuite) TestCancelDiscardsLookup() {
	s.addPaidRegistration("EVT-00001", gateEvent)

	_, err := s.station.Scan(s.ctx, "EVT-00001")
	s.Require().NoError(err)
	s.station.Cancel()

	_, err = s.station.Confirm(s.ctx)
	s.ErrorIs(err, model.ErrNoEligibleLookup)
	s.Equal(0, s.station.Admitted())
}

func (s *StationSuite) TestPauseDiscardsPendingLookup() {
	s.addPaidRegistration("EVT-00001", gateEvent)

	_, err := s.station.Scan(s.ctx, "EVT-00001")
	s.Require().NoError(err)
	s.station.Pause()
	s.station.Resume()

	_, err = s.station.Confirm(s.ctx)
	s.ErrorIs(err, model.ErrNoEligibleLookup)
}
