package services

import (
	"fmt"

	"github.com/dmoraes/controlog/internal/models"
)

// Policy decides which pending items a regular user sees. The system this
// replaces shipped with two divergent behaviors; both are kept as explicit,
// selectable policies instead of silently picking one.
type Policy string

const (
	// PolicyDestination shows only items whose destination unit matches the
	// user's destination affiliation.
	PolicyDestination Policy = "destination"

	// PolicyAnyUnit shows items matching either of the user's unit
	// affiliations.
	PolicyAnyUnit Policy = "origin-or-destination"
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyDestination, PolicyAnyUnit:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown visibility policy %q", s)
	}
}

// FilterItems applies the visibility policy for one user. Admins always see
// everything under both policies.
func FilterItems(items []models.PendingItem, u models.User, p Policy) []models.PendingItem {
	if u.Role == models.RoleAdmin {
		return items
	}

	var out []models.PendingItem
	for _, item := range items {
		if itemVisible(item, u, p) {
			out = append(out, item)
		}
	}
	return out
}

func itemVisible(item models.PendingItem, u models.User, p Policy) bool {
	switch p {
	case PolicyDestination:
		return u.UnitDestination != "" && item.DestinationUnit == u.UnitDestination
	default: // PolicyAnyUnit
		if u.UnitDestination != "" && item.DestinationUnit == u.UnitDestination {
			return true
		}
		return u.UnitOrigin != "" && item.OriginUnit == u.UnitOrigin
	}
}
