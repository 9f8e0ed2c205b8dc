package staff

import (
	"context"
	"os"
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

type ConsoleSuite struct {
	suite.Suite
	backend *portaltest.Server
	sess    *session.Store
	console *Console
	ctx     context.Context
}

func TestConsoleSuite(t *testing.T) {
	suite.Run(t, new(ConsoleSuite))
}

func (s *ConsoleSuite) SetupTest() {
	s.backend = portaltest.New()
	s.T().Cleanup(s.backend.Close)

	var err error
	s.sess, err = session.Open(filepath.Join(s.T().TempDir(), "session.json"), mocks.NewMockClock(time.Now()))
	s.Require().NoError(err)

	client := portal.New(s.backend.URL(), s.sess, testutil.NopLogger())
	s.console = NewConsole(client, s.sess, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ConsoleSuite) loginAdmin() {
	_, err := s.console.Login(s.ctx, "admin", "admin")
	s.Require().NoError(err)
}

// Login tests

func (s *ConsoleSuite) TestLoginPersistsTokenAndDescriptor() {
	user, err := s.console.Login(s.ctx, "admin", "admin")
	s.Require().NoError(err)

	s.Equal(model.RoleAdmin, user.Role)
	s.NotEmpty(s.sess.Token())
	s.Require().NotNil(s.sess.Staff())
	s.Equal("admin", s.sess.Staff().Username)
}

func (s *ConsoleSuite) TestLoginBadCredentialsRejected() {
	_, err := s.console.Login(s.ctx, "admin", "wrong")
	s.ErrorIs(err, portal.ErrUnauthorized)
	s.Empty(s.sess.Token())
}

func (s *ConsoleSuite) TestLogoutClearsSession() {
	s.loginAdmin()
	s.Require().NoError(s.console.Logout())
	s.Empty(s.sess.Token())
	s.Nil(s.sess.Staff())
}

func (s *ConsoleSuite) TestToolsRequireLogin() {
	_, err := s.console.ListStaff(s.ctx)
	s.ErrorIs(err, model.ErrNotLoggedIn)
}

func (s *ConsoleSuite) TestAdminToolsRefuseOtherRoles() {
	s.loginAdmin()
	s.backend.AddStaff("desk1", "pw", model.RoleCashier, 0)
	_, err := s.console.Login(s.ctx, "desk1", "pw")
	s.Require().NoError(err)

	_, err = s.console.ListStaff(s.ctx)
	s.ErrorIs(err, model.ErrRoleForbidden)
}

// Event management

func (s *ConsoleSuite) TestCreateEventReturnsRefreshedCatalog() {
	s.loginAdmin()

	events, err := s.console.CreateEvent(s.ctx, portal.CreateEventRequest{
		Name: "Chess", Type: model.EventSolo, Fee: 50,
	})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("Chess", events[0].Name)
}

func (s *ConsoleSuite) TestDeleteEventReturnsRefreshedCatalog() {
	s.loginAdmin()
	ev := s.backend.AddEvent(model.Event{Name: "Chess", Type: model.EventSolo})

	events, err := s.console.DeleteEvent(s.ctx, ev.ID)
	s.Require().NoError(err)
	s.Empty(events)
}

// Staff account management

func (s *ConsoleSuite) TestCreateStaffAccount() {
	s.loginAdmin()

	accounts, err := s.console.CreateStaff(s.ctx, portal.CreateStaffRequest{
		Username: "gate7", Password: "pw", Role: model.RoleGuard, AssignedEventID: 7,
	})
	s.Require().NoError(err)
	s.Require().Len(accounts, 2)
	s.Equal(model.RoleGuard, accounts[1].Role)
}

func (s *ConsoleSuite) TestDeleteReservedAccountRefusedLocally() {
	s.loginAdmin()

	_, err := s.console.DeleteStaff(s.ctx, model.ReservedStaffID)
	s.ErrorIs(err, model.ErrReservedAccount)

	// Nothing was deleted server-side either
	accounts, err := s.console.ListStaff(s.ctx)
	s.Require().NoError(err)
	s.Len(accounts, 1)
}

// Cashier tools

func (s *ConsoleSuite) TestGenerateTokenAttributedToCashier() {
	s.backend.AddStaff("desk1", "pw", model.RoleCashier, 0)
	_, err := s.console.Login(s.ctx, "desk1", "pw")
	s.Require().NoError(err)

	tok, err := s.console.GenerateToken(s.ctx, 250)
	s.Require().NoError(err)

	s.NotEmpty(tok.Token)
	s.Equal(250.0, tok.Amount)
	s.Contains(s.backend.IssuedTokens(), tok.Token)
}

func (s *ConsoleSuite) TestWalkInValidatesTeamSizeLocally() {
	s.backend.AddStaff("desk1", "pw", model.RoleCashier, 0)
	_, err := s.console.Login(s.ctx, "desk1", "pw")
	s.Require().NoError(err)

	ev := s.backend.AddEvent(model.Event{
		Name: "Robotics", Type: model.EventGroup, Fee: 200, MinTeamSize: 3, MaxTeamSize: 5,
	})

	_, err = s.console.WalkIn(s.ctx, ev, portal.WalkInRequest{
		Name: "Ann", Email: "ann@example.com",
		Members: []model.Teammate{{Name: "Bea", Email: "bea@example.com"}},
	})
	s.ErrorIs(err, model.ErrTeamTooSmall)
}

func (s *ConsoleSuite) TestWalkInMintsUIDForEveryMember() {
	s.backend.AddStaff("desk1", "pw", model.RoleCashier, 0)
	_, err := s.console.Login(s.ctx, "desk1", "pw")
	s.Require().NoError(err)

	ev := s.backend.AddEvent(model.Event{
		Name: "Robotics", Type: model.EventGroup, Fee: 200, MinTeamSize: 2, MaxTeamSize: 5,
	})

	resp, err := s.console.WalkIn(s.ctx, ev, portal.WalkInRequest{
		Name: "Ann", Email: "ann@example.com",
		Members: []model.Teammate{{Name: "Bea", Email: "bea@example.com"}},
	})
	s.Require().NoError(err)

	s.Equal(200.0, resp.Data.TotalPaid)
	s.Require().Len(resp.Data.Participants, 2)
	for _, p := range resp.Data.Participants {
		s.Regexp(`^EVT-\d{5}$`, string(p.UID))
	}
}

// Reports

func (s *ConsoleSuite) TestExportEventWritesCSV() {
	s.loginAdmin()
	ev := s.backend.AddEvent(model.Event{Name: "Chess", Type: model.EventSolo, Fee: 50})
	p := s.backend.AddParticipant(model.Participant{Name: "Ann", Email: "ann@example.com"})
	s.backend.AddRegistration(model.Registration{
		UserUID: p.UID, EventID: ev.ID, PaymentStatus: model.PaymentPaid,
	})

	dir := s.T().TempDir()
	path, err := s.console.ExportEvent(s.ctx, dir, ev.ID, "ALL", "NAME")
	s.Require().NoError(err)

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Contains(string(data), "Ann")
	s.Contains(string(data), string(p.UID))
}

func (s *ConsoleSuite) TestExportMasterWritesCSV() {
	s.loginAdmin()

	dir := s.T().TempDir()
	path, err := s.console.ExportMaster(s.ctx, dir)
	s.Require().NoError(err)

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Contains(string(data), "Name,UID,Event,Team,Payment,Attended")
}
