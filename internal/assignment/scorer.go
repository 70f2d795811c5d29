package assignment

import (
	"sort"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/geo"
)

const (
	weightDistance = 0.5
	weightWorkload = 0.3
	weightRating   = 0.2

	// defaultRating is assumed for agents who have not been rated yet.
	defaultRating = 4.5
)

// Candidate pairs an agent with their current workload.
type Candidate struct {
	Agent    models.User
	Workload int64
}

// ScoredAgent is one ranked assignment candidate.
type ScoredAgent struct {
	AgentID    uuid.UUID `json:"agent_id"`
	Name       string    `json:"name"`
	Score      float64   `json:"score"`
	DistanceKm float64   `json:"distance_km"`
	Workload   int64     `json:"workload"`
	Rating     float64   `json:"rating"`
}

// ScoreAgents ranks candidates for a move located at the target coordinates.
// Closer, less busy, better rated agents score higher. The sort is stable so
// equal scores keep their input order.
func ScoreAgents(candidates []Candidate, targetLat, targetLng *float64) []ScoredAgent {
	scored := make([]ScoredAgent, 0, len(candidates))
	for _, candidate := range candidates {
		distanceKm := geo.DistanceKm(candidate.Agent.Latitude, candidate.Agent.Longitude, targetLat, targetLng)

		rating := defaultRating
		if candidate.Agent.Rating != nil {
			rating = *candidate.Agent.Rating
		}

		distanceScore := 100 - 2*distanceKm
		if distanceScore < 0 {
			distanceScore = 0
		}
		workloadScore := 100 - 20*float64(candidate.Workload)
		if workloadScore < 0 {
			workloadScore = 0
		}
		ratingScore := rating * 20

		scored = append(scored, ScoredAgent{
			AgentID:    candidate.Agent.ID,
			Name:       candidate.Agent.Name,
			Score:      weightDistance*distanceScore + weightWorkload*workloadScore + weightRating*ratingScore,
			DistanceKm: distanceKm,
			Workload:   candidate.Workload,
			Rating:     rating,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// FilterByCity keeps agents whose city matches the target. When nobody
// matches, the full pool is returned so a move never goes unassigned just
// because city data is sparse.
func FilterByCity(agents []models.User, targetCity string) []models.User {
	target := geo.NormalizeCity(targetCity)
	var matched []models.User
	for _, agent := range agents {
		if agent.City != nil && geo.NormalizeCity(*agent.City) == target {
			matched = append(matched, agent)
		}
	}
	if len(matched) == 0 {
		return agents
	}
	return matched
}
