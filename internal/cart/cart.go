// Package cart implements the event stack: the client-local set of
// events a participant intends to register for in one checkout. The
// stack lives only in memory and is deliberately lost when the process
// exits; the server becomes the source of truth after payment.
package cart

import (
	"fmt"

	"github.com/SXPXL/eventflow/internal/model"
)

// TeamEntry is the roster attached to a GROUP stack entry
type TeamEntry struct {
	Name      string
	Teammates []model.Teammate
}

// Item is one pending registration intent. Fee is a snapshot taken at
// add time so the displayed total cannot drift under the user.
type Item struct {
	EventID   model.EventID
	EventName string
	EventType model.EventType
	Fee       float64
	Team      *TeamEntry
}

// Cart holds stack entries keyed by event ID, preserving add order
type Cart struct {
	items []Item
	index map[model.EventID]int
}

// New creates an empty cart
func New() *Cart {
	return &Cart{index: make(map[model.EventID]int)}
}

// Add places an event on the stack. A duplicate event ID is rejected,
// and GROUP events must carry a roster that satisfies the event's
// team-size bounds.
func (c *Cart) Add(event model.Event, team *TeamEntry) error {
	if _, ok := c.index[event.ID]; ok {
		return fmt.Errorf("%w: %s", model.ErrAlreadyStacked, event.Name)
	}
	return c.put(event, team)
}

// Replace upserts an entry for the event, keeping its stack position.
// It backs the "edit team" flow where a group roster is re-added.
func (c *Cart) Replace(event model.Event, team *TeamEntry) error {
	if i, ok := c.index[event.ID]; ok {
		item, err := c.makeItem(event, team)
		if err != nil {
			return err
		}
		c.items[i] = item
		return nil
	}
	return c.put(event, team)
}

// Remove takes an event off the stack. Removing an absent ID is a no-op.
func (c *Cart) Remove(id model.EventID) {
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].EventID] = j
	}
}

// Items returns the stack entries in add order
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the entry for an event ID, if stacked
func (c *Cart) Get(id model.EventID) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Len returns the number of stack entries
func (c *Cart) Len() int {
	return len(c.items)
}

// Total sums the fee snapshots. It is recomputed on every call, never
// cached.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Fee
	}
	return total
}

// Clear empties the stack after a successful checkout
func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[model.EventID]int)
}

func (c *Cart) put(event model.Event, team *TeamEntry) error {
	item, err := c.makeItem(event, team)
	if err != nil {
		return err
	}
	c.index[event.ID] = len(c.items)
	c.items = append(c.items, item)
	return nil
}

func (c *Cart) makeItem(event model.Event, team *TeamEntry) (Item, error) {
	if event.Type == model.EventGroup {
		if team == nil {
			return Item{}, fmt.Errorf("%w: %s", model.ErrTeamRequired, event.Name)
		}
		team = &TeamEntry{Name: team.Name, Teammates: pruneEmpty(team.Teammates)}
		if err := ValidateTeamSize(event, 1+len(team.Teammates)); err != nil {
			return Item{}, err
		}
	} else {
		team = nil
	}

	return Item{
		EventID:   event.ID,
		EventName: event.Name,
		EventType: event.Type,
		Fee:       event.Fee,
		Team:      team,
	}, nil
}

// ValidateTeamSize checks leader-plus-teammates count against the
// event's bounds. Walk-in registration shares it with the cart.
func ValidateTeamSize(event model.Event, participants int) error {
	if event.Type != model.EventGroup {
		return nil
	}
	if min := event.MinTeamSize; min > 0 && participants < min {
		return fmt.Errorf("%w: %s needs at least %d participants, have %d",
			model.ErrTeamTooSmall, event.Name, min, participants)
	}
	if max := event.MaxTeamSize; max > 0 && participants > max {
		return fmt.Errorf("%w: %s allows at most %d participants, have %d",
			model.ErrTeamTooLarge, event.Name, max, participants)
	}
	return nil
}

// pruneEmpty drops blank roster rows so half-filled form rows do not
// count toward the team size
func pruneEmpty(mates []model.Teammate) []model.Teammate {
	out := make([]model.Teammate, 0, len(mates))
	for _, m := range mates {
		if m.Email != "" {
			out = append(out, m)
		}
	}
	return out
}
