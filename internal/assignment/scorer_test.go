package assignment

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/geo"
)

func floatPtr(v float64) *float64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

// Coordinates roughly 2km and 50km north of the target along a meridian.
// One degree of latitude is about 111.19km.
const (
	targetLat = 12.9716
	targetLng = 77.5946
)

func TestScoreAgentsScenario(t *testing.T) {
	ratingA := 4.5
	ratingB := 5.0
	agentA := models.User{
		ID:        uuid.New(),
		Name:      "A",
		Latitude:  floatPtr(targetLat + 2.0/111.19),
		Longitude: floatPtr(targetLng),
		Rating:    &ratingA,
	}
	agentB := models.User{
		ID:        uuid.New(),
		Name:      "B",
		Latitude:  floatPtr(targetLat + 50.0/111.19),
		Longitude: floatPtr(targetLng),
		Rating:    &ratingB,
	}

	ranked := ScoreAgents([]Candidate{
		{Agent: agentA, Workload: 1},
		{Agent: agentB, Workload: 0},
	}, floatPtr(targetLat), floatPtr(targetLng))

	require.Len(t, ranked, 2)
	// A: 0.5×96 + 0.3×80 + 0.2×90 = 90.0; B: 0.5×0 + 0.3×100 + 0.2×100 = 50.0.
	require.Equal(t, agentA.ID, ranked[0].AgentID)
	require.InDelta(t, 90.0, ranked[0].Score, 0.1)
	require.Equal(t, agentB.ID, ranked[1].AgentID)
	require.InDelta(t, 50.0, ranked[1].Score, 0.1)
}

func TestScoreAgentsMissingCoordinates(t *testing.T) {
	agent := models.User{ID: uuid.New(), Name: "nowhere"}

	ranked := ScoreAgents([]Candidate{{Agent: agent}}, floatPtr(targetLat), floatPtr(targetLng))
	require.Len(t, ranked, 1)
	require.Equal(t, geo.UnknownDistanceKm, ranked[0].DistanceKm)
	// Distance component zeroes out; workload 100 and default rating 4.5 remain.
	require.InDelta(t, 0.3*100+0.2*90, ranked[0].Score, 0.001)
}

func TestScoreAgentsStableOrderOnTies(t *testing.T) {
	first := models.User{ID: uuid.New(), Name: "first"}
	second := models.User{ID: uuid.New(), Name: "second"}

	ranked := ScoreAgents([]Candidate{{Agent: first}, {Agent: second}}, nil, nil)
	require.Equal(t, first.ID, ranked[0].AgentID)
	require.Equal(t, second.ID, ranked[1].AgentID)
}

func TestHaversineSymmetry(t *testing.T) {
	ab := geo.HaversineKm(12.9716, 77.5946, 13.0827, 80.2707)
	ba := geo.HaversineKm(13.0827, 80.2707, 12.9716, 77.5946)
	require.True(t, math.Abs(ab-ba) < 1e-9)
}

func TestFilterByCity(t *testing.T) {
	blr := models.User{ID: uuid.New(), City: strPtr("Bengaluru")}
	maa := models.User{ID: uuid.New(), City: strPtr("Chennai")}
	pool := []models.User{blr, maa}

	matched := FilterByCity(pool, "  bengaluru ")
	require.Len(t, matched, 1)
	require.Equal(t, blr.ID, matched[0].ID)

	// No match falls back to the full pool.
	matched = FilterByCity(pool, "Mumbai")
	require.Len(t, matched, 2)
}
