package cart

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/SXPXL/eventflow/internal/model"
)

type CartSuite struct {
	suite.Suite
	cart *Cart
	solo model.Event
	duo  model.Event
}

func TestCartSuite(t *testing.T) {
	suite.Run(t, new(CartSuite))
}

func (s *CartSuite) SetupTest() {
	s.cart = New()
	s.solo = model.Event{ID: 1, Name: "Chess", Type: model.EventSolo, Fee: 50}
	s.duo = model.Event{ID: 2, Name: "Robotics", Type: model.EventGroup, Fee: 200, MinTeamSize: 2, MaxTeamSize: 5}
}

func (s *CartSuite) team(n int) *TeamEntry {
	team := &TeamEntry{Name: "Rockets"}
	mates := []model.Teammate{
		{Name: "Bea", Email: "bea@example.com"},
		{Name: "Cal", Email: "cal@example.com"},
		{Name: "Dee", Email: "dee@example.com"},
		{Name: "Eve", Email: "eve@example.com"},
		{Name: "Fay", Email: "fay@example.com"},
	}
	// n counts the whole team including the leader
	team.Teammates = mates[:n-1]
	return team
}

// Add tests

func (s *CartSuite) TestAddSoloEvent() {
	s.Require().NoError(s.cart.Add(s.solo, nil))
	s.Equal(1, s.cart.Len())
	s.Equal(50.0, s.cart.Total())
}

func (s *CartSuite) TestAddDuplicateRejected() {
	s.Require().NoError(s.cart.Add(s.solo, nil))

	err := s.cart.Add(s.solo, nil)
	s.ErrorIs(err, model.ErrAlreadyStacked)
	s.Equal(1, s.cart.Len())
}

func (s *CartSuite) TestAddGroupWithoutTeamRejected() {
	err := s.cart.Add(s.duo, nil)
	s.ErrorIs(err, model.ErrTeamRequired)
}

func (s *CartSuite) TestAddGroupBelowMinimumRejected() {
	err := s.cart.Add(s.duo, s.team(1))
	s.ErrorIs(err, model.ErrTeamTooSmall)
}

func (s *CartSuite) TestAddGroupAboveMaximumRejected() {
	err := s.cart.Add(s.duo, s.team(6))
	s.ErrorIs(err, model.ErrTeamTooLarge)
}

func (s *CartSuite) TestAddGroupAtBounds() {
	s.Require().NoError(s.cart.Add(s.duo, s.team(2)))
	s.cart.Remove(s.duo.ID)
	s.Require().NoError(s.cart.Add(s.duo, s.team(5)))
}

func (s *CartSuite) TestAddPrunesBlankTeammateRows() {
	team := &TeamEntry{Name: "Rockets", Teammates: []model.Teammate{
		{Name: "Bea", Email: "bea@example.com"},
		{Name: "", Email: ""},
	}}
	s.Require().NoError(s.cart.Add(s.duo, team))

	item, ok := s.cart.Get(s.duo.ID)
	s.Require().True(ok)
	s.Len(item.Team.Teammates, 1)
}

// Replace tests

func (s *CartSuite) TestReplaceKeepsPosition() {
	s.Require().NoError(s.cart.Add(s.duo, s.team(2)))
	s.Require().NoError(s.cart.Add(s.solo, nil))

	s.Require().NoError(s.cart.Replace(s.duo, s.team(3)))

	items := s.cart.Items()
	s.Require().Len(items, 2)
	s.Equal(s.duo.ID, items[0].EventID)
	s.Len(items[0].Team.Teammates, 2)
}

func (s *CartSuite) TestReplaceAddsWhenAbsent() {
	s.Require().NoError(s.cart.Replace(s.solo, nil))
	s.Equal(1, s.cart.Len())
}

// Remove tests

func (s *CartSuite) TestRemoveReindexes() {
	s.Require().NoError(s.cart.Add(s.solo, nil))
	s.Require().NoError(s.cart.Add(s.duo, s.team(2)))

	s.cart.Remove(s.solo.ID)

	item, ok := s.cart.Get(s.duo.ID)
	s.Require().True(ok)
	s.Equal(s.duo.ID, item.EventID)
	s.Equal(1, s.cart.Len())
}

func (s *CartSuite) TestRemoveAbsentIsNoop() {
	s.cart.Remove(99)
	s.Equal(0, s.cart.Len())
}

// Total tests

func (s *CartSuite) TestTotalSumsFeeSnapshots() {
	s.Require().NoError(s.cart.Add(s.solo, nil))
	s.Require().NoError(s.cart.Add(s.duo, s.team(2)))
	s.Equal(250.0, s.cart.Total())

	s.cart.Remove(s.duo.ID)
	s.Equal(50.0, s.cart.Total())
}

func (s *CartSuite) TestTotalUnaffectedByLaterFeeChanges() {
	s.Require().NoError(s.cart.Add(s.solo, nil))

	// A catalog refresh changing the live fee must not move the total
	s.solo.Fee = 500
	s.Equal(50.0, s.cart.Total())
}

func (s *CartSuite) TestClearEmptiesStack() {
	s.Require().NoError(s.cart.Add(s.solo, nil))
	s.cart.Clear()
	s.Equal(0, s.cart.Len())
	s.Equal(0.0, s.cart.Total())
}

// ValidateTeamSize tests

func (s *CartSuite) TestValidateTeamSizeIgnoresSoloEvents() {
	s.NoError(ValidateTeamSize(s.solo, 1))
}

func (s *CartSuite) TestValidateTeamSizeBounds() {
	s.ErrorIs(ValidateTeamSize(s.duo, 1), model.ErrTeamTooSmall)
	s.NoError(ValidateTeamSize(s.duo, 2))
	s.NoError(ValidateTeamSize(s.duo, 5))
	s.ErrorIs(ValidateTeamSize(s.duo, 6), model.ErrTeamTooLarge)
}
