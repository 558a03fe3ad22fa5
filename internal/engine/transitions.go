package engine

import (
	"github.com/careerpilot/autofill-backend/internal/models"
)

// transitions is the whole state machine in one table so the invariant is
// auditable in one place instead of scattered conditionals.
var transitions = map[string][]string{
	models.StatusPending:   {models.StatusApplied, models.StatusWithdrawn},
	models.StatusApplied:   {models.StatusInterview, models.StatusRejected, models.StatusOffer, models.StatusWithdrawn},
	models.StatusInterview: {},
	models.StatusRejected:  {},
	models.StatusOffer:     {},
	models.StatusWithdrawn: {},
}

// ValidStatus reports whether s is a known application status.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition is defined out of s.
func IsTerminal(s string) bool {
	return ValidStatus(s) && len(transitions[s]) == 0
}
