package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoraes/controlog/internal/models"
)

var visItems = []models.PendingItem{
	{CTE: "1", OriginUnit: "UnitA", DestinationUnit: "UnitB"},
	{CTE: "2", OriginUnit: "UnitC", DestinationUnit: "UnitB"},
	{CTE: "3", OriginUnit: "UnitA", DestinationUnit: "UnitD"},
	{CTE: "4", OriginUnit: "UnitX", DestinationUnit: "UnitY"},
}

func ctes(items []models.PendingItem) []string {
	var out []string
	for _, i := range items {
		out = append(out, i.CTE)
	}
	return out
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("destination")
	require.NoError(t, err)
	assert.Equal(t, PolicyDestination, p)

	p, err = ParsePolicy("origin-or-destination")
	require.NoError(t, err)
	assert.Equal(t, PolicyAnyUnit, p)

	_, err = ParsePolicy("everything")
	assert.Error(t, err)
}

func TestFilterItems_DestinationPolicy(t *testing.T) {
	u := models.User{Role: models.RoleUser, UnitOrigin: "UnitA", UnitDestination: "UnitB"}

	got := FilterItems(visItems, u, PolicyDestination)
	assert.Equal(t, []string{"1", "2"}, ctes(got))
}

func TestFilterItems_AnyUnitPolicy(t *testing.T) {
	u := models.User{Role: models.RoleUser, UnitOrigin: "UnitA", UnitDestination: "UnitB"}

	got := FilterItems(visItems, u, PolicyAnyUnit)
	// Destination matches 1 and 2; origin additionally matches 3.
	assert.Equal(t, []string{"1", "2", "3"}, ctes(got))
}

func TestFilterItems_AdminSeesAll(t *testing.T) {
	admin := models.User{Role: models.RoleAdmin}

	for _, p := range []Policy{PolicyDestination, PolicyAnyUnit} {
		got := FilterItems(visItems, admin, p)
		assert.Len(t, got, len(visItems))
	}
}

func TestFilterItems_EmptyAffiliationsMatchNothing(t *testing.T) {
	u := models.User{Role: models.RoleUser}

	assert.Empty(t, FilterItems(visItems, u, PolicyDestination))
	assert.Empty(t, FilterItems(visItems, u, PolicyAnyUnit))
}
