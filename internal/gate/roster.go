package gate

import (
	"sort"

	"github.com/SXPXL/eventflow/internal/model"
)

// SoloTeamLabel is the bucket for registrations with no team.
const SoloTeamLabel = "Individual"

// TeamGroup is one team's registrations for an event.
type TeamGroup struct {
	Name    string
	Members []model.Registration
}

// GroupByTeam buckets an event's registrations by team name, with
// solo entries collected under the Individual label. Groups come back
// sorted by name with Individual last.
func GroupByTeam(regs []model.Registration, eventID model.EventID) []TeamGroup {
	byName := make(map[string][]model.Registration)
	for _, r := range regs {
		if r.EventID != eventID {
			continue
		}
		name := r.TeamName
		if name == "" {
			name = SoloTeamLabel
		}
		byName[name] = append(byName[name], r)
	}

	groups := make([]TeamGroup, 0, len(byName))
	for name, members := range byName {
		groups = append(groups, TeamGroup{Name: name, Members: members})
	}
	sort.Slice(groups, func(i, j int) bool {
		if (groups[i].Name == SoloTeamLabel) != (groups[j].Name == SoloTeamLabel) {
			return groups[j].Name == SoloTeamLabel
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}
