package store

import (
	"strings"

	"helpdesk/types"
)

// Filter narrows a ticket list for display. Zero values disable the
// corresponding criterion.
type Filter struct {
	Search   string
	Status   int
	Priority int
}

func (f Filter) matches(t types.Ticket) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		inTitle := strings.Contains(strings.ToLower(t.Title), needle)
		inDescription := strings.Contains(strings.ToLower(t.Description), needle)
		if !inTitle && !inDescription {
			return false
		}
	}
	if f.Status != 0 && t.SwStatus != f.Status {
		return false
	}
	if f.Priority != 0 && t.PriorityID != f.Priority {
		return false
	}
	return true
}

func (f Filter) Apply(tickets []types.Ticket) []types.Ticket {
	out := []types.Ticket{}
	for _, t := range tickets {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// AssignedQueue is the agent's working set: tickets in status Asignado.
func AssignedQueue(tickets []types.Ticket) []types.Ticket {
	out := []types.Ticket{}
	for _, t := range tickets {
		if t.SwStatus == types.StatusAsignado {
			out = append(out, t)
		}
	}
	return out
}

// ClaimPool lists the tickets an agent may self-assign: open or returned.
func ClaimPool(tickets []types.Ticket) []types.Ticket {
	out := []types.Ticket{}
	for _, t := range tickets {
		if t.Claimable() {
			out = append(out, t)
		}
	}
	return out
}
