package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/SXPXL/eventflow/internal/dependencies/mocks"
	"github.com/SXPXL/eventflow/internal/model"
)

type StoreSuite struct {
	suite.Suite
	path  string
	clock *mocks.MockClock
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "session.json")
	s.clock = mocks.NewMockClock(time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC))

	var err error
	s.store, err = Open(s.path, s.clock)
	s.Require().NoError(err)
}

func (s *StoreSuite) reopen() *Store {
	store, err := Open(s.path, s.clock)
	s.Require().NoError(err)
	return store
}

func (s *StoreSuite) mintToken(expiry time.Time) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "gatekeeper",
		Role:     model.RoleGuard,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	s.Require().NoError(err)
	return signed
}

// Persistence tests

func (s *StoreSuite) TestOpenMissingFileGivesEmptySession() {
	s.Empty(s.store.Token())
	s.Nil(s.store.Staff())
	s.Empty(s.store.ActiveUID())
	s.False(s.store.SpotMode())
}

func (s *StoreSuite) TestStaffLoginSurvivesReopen() {
	user := model.StaffUser{ID: 2, Username: "desk1", Role: model.RoleCashier}
	s.Require().NoError(s.store.SetStaff("token-abc", user))

	reopened := s.reopen()
	s.Equal("token-abc", reopened.Token())
	s.Require().NotNil(reopened.Staff())
	s.Equal(model.RoleCashier, reopened.Staff().Role)
}

func (s *StoreSuite) TestClearStaffDropsTokenAndDescriptor() {
	s.Require().NoError(s.store.SetStaff("token-abc", model.StaffUser{ID: 2}))
	s.Require().NoError(s.store.ClearStaff())

	reopened := s.reopen()
	s.Empty(reopened.Token())
	s.Nil(reopened.Staff())
}

func (s *StoreSuite) TestClearStaffKeepsParticipantState() {
	s.Require().NoError(s.store.SetActiveUID("EVT-00042"))
	s.Require().NoError(s.store.SetSpotMode(true))
	s.Require().NoError(s.store.SetStaff("token-abc", model.StaffUser{ID: 2}))

	s.Require().NoError(s.store.ClearStaff())

	reopened := s.reopen()
	s.Equal(model.UID("EVT-00042"), reopened.ActiveUID())
	s.True(reopened.SpotMode())
}

func (s *StoreSuite) TestResetClearsEverything() {
	s.Require().NoError(s.store.SetActiveUID("EVT-00042"))
	s.Require().NoError(s.store.SetStaff("token-abc", model.StaffUser{ID: 2}))

	s.Require().NoError(s.store.Reset())

	reopened := s.reopen()
	s.Empty(reopened.Token())
	s.Empty(reopened.ActiveUID())
}

// Claims tests

func (s *StoreSuite) TestClaimsDecodeWithoutVerification() {
	token := s.mintToken(s.clock.Now().Add(time.Hour))
	s.Require().NoError(s.store.SetStaff(token, model.StaffUser{Username: "gatekeeper", Role: model.RoleGuard}))

	claims := s.store.Claims()
	s.Require().NotNil(claims)
	s.Equal("gatekeeper", claims.Username)
	s.Equal(model.RoleGuard, claims.Role)
}

func (s *StoreSuite) TestClaimsNilForMalformedToken() {
	s.Require().NoError(s.store.SetStaff("not-a-jwt", model.StaffUser{ID: 2}))
	s.Nil(s.store.Claims())
}

func (s *StoreSuite) TestRolePrefersStoredDescriptor() {
	token := s.mintToken(s.clock.Now().Add(time.Hour))
	s.Require().NoError(s.store.SetStaff(token, model.StaffUser{Role: model.RoleAdmin}))
	s.Equal(model.RoleAdmin, s.store.Role())
}

// TokenExpired tests

func (s *StoreSuite) TestTokenNotExpiredBeforeExpiry() {
	token := s.mintToken(s.clock.Now().Add(time.Hour))
	s.Require().NoError(s.store.SetStaff(token, model.StaffUser{}))
	s.False(s.store.TokenExpired())
}

func (s *StoreSuite) TestTokenExpiredAfterExpiry() {
	token := s.mintToken(s.clock.Now().Add(time.Hour))
	s.Require().NoError(s.store.SetStaff(token, model.StaffUser{}))

	s.clock.Advance(2 * time.Hour)
	s.True(s.store.TokenExpired())
}

func (s *StoreSuite) TestMalformedTokenNotReportedExpired() {
	s.Require().NoError(s.store.SetStaff("not-a-jwt", model.StaffUser{}))
	s.False(s.store.TokenExpired())
}
