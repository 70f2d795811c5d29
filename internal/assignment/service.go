package assignment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/notifications"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
)

// Assignment outcomes.
const (
	OutcomeAssigned          = "assigned"
	OutcomeAlreadyAssigned   = "already_assigned"
	OutcomeNoCityData        = "no_city_data"
	OutcomeNoAgentsAvailable = "no_agents_available"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Result reports what auto-assignment did.
type Result struct {
	Outcome    string        `json:"outcome"`
	Agent      *models.User  `json:"agent,omitempty"`
	Score      float64       `json:"score,omitempty"`
	Candidates []ScoredAgent `json:"candidates,omitempty"`
}

// Service ranks and assigns agents to moves.
type Service interface {
	AutoAssign(ctx context.Context, moveID, actorID uuid.UUID, actorRole enums.UserRole) (*Result, error)
	Assign(ctx context.Context, moveID, agentID, adminID uuid.UUID) (*models.Move, error)
}

type service struct {
	repo     Repository
	moves    moves.Repository
	tx       txRunner
	recorder activity.Recorder
	notifier notifications.Service
}

// NewService builds an assignment service with the required dependencies.
func NewService(repo Repository, movesRepo moves.Repository, tx txRunner, recorder activity.Recorder, notifier notifications.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignment repository required")
	}
	if movesRepo == nil {
		return nil, fmt.Errorf("moves repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("activity recorder required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	return &service{
		repo:     repo,
		moves:    movesRepo,
		tx:       tx,
		recorder: recorder,
		notifier: notifier,
	}, nil
}

// AutoAssign picks the best available agent for the move. Re-calling it on an
// assigned move is a no-op with no side effects.
func (s *service) AutoAssign(ctx context.Context, moveID, actorID uuid.UUID, actorRole enums.UserRole) (*Result, error) {
	if moveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id required")
	}

	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := movesRepo.FindForUpdate(ctx, moveID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
		}
		if move.AgentID != nil {
			result = &Result{Outcome: OutcomeAlreadyAssigned}
			return nil
		}

		targetCity, targetLat, targetLng := target(move)
		if targetCity == "" {
			result = &Result{Outcome: OutcomeNoCityData}
			return nil
		}

		repo := s.repo.WithTx(tx)
		pool, err := repo.ListAvailableAgents(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agents")
		}
		pool = FilterByCity(pool, targetCity)
		if len(pool) == 0 {
			result = &Result{Outcome: OutcomeNoAgentsAvailable}
			return nil
		}

		ids := make([]uuid.UUID, len(pool))
		for i, agent := range pool {
			ids[i] = agent.ID
		}
		workloads, err := repo.CountActiveMovesByAgent(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count agent workloads")
		}

		candidates := make([]Candidate, len(pool))
		for i, agent := range pool {
			candidates[i] = Candidate{Agent: agent, Workload: workloads[agent.ID]}
		}
		ranked := ScoreAgents(candidates, targetLat, targetLng)
		best := ranked[0]

		var winner *models.User
		for i := range pool {
			if pool[i].ID == best.AgentID {
				winner = &pool[i]
				break
			}
		}

		if err := movesRepo.Update(ctx, move.ID, map[string]any{"agent_id": best.AgentID}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign agent")
		}

		if err := s.recordAssignment(ctx, tx, move, winner, actorID, actorRole, &best, ranked); err != nil {
			return err
		}

		result = &Result{
			Outcome:    OutcomeAssigned,
			Agent:      winner,
			Score:      best.Score,
			Candidates: ranked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Assign sets a specific agent on the move, bypassing scoring.
func (s *service) Assign(ctx context.Context, moveID, agentID, adminID uuid.UUID) (*models.Move, error) {
	if moveID == uuid.Nil || agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move id and agent id required")
	}

	var updated *models.Move
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		movesRepo := s.moves.WithTx(tx)
		move, err := movesRepo.FindForUpdate(ctx, moveID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load move")
		}

		agent, err := s.repo.WithTx(tx).FindAgent(ctx, agentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
		}

		if err := movesRepo.Update(ctx, move.ID, map[string]any{"agent_id": agent.ID}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign agent")
		}

		if err := s.recordAssignment(ctx, tx, move, agent, adminID, enums.UserRoleAdmin, nil, nil); err != nil {
			return err
		}

		move.AgentID = &agent.ID
		updated = move
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) recordAssignment(ctx context.Context, tx *gorm.DB, move *models.Move, agent *models.User, actorID uuid.UUID, actorRole enums.UserRole, best *ScoredAgent, ranked []ScoredAgent) error {
	metadata := map[string]any{
		"agent_id":   agent.ID,
		"agent_name": agent.Name,
	}
	if best != nil {
		metadata["score"] = best.Score
		metadata["distance_km"] = best.DistanceKm
		metadata["workload"] = best.Workload
		metadata["candidates"] = len(ranked)
	}

	var actor *uuid.UUID
	var role *enums.UserRole
	if actorID != uuid.Nil {
		actor = &actorID
		role = &actorRole
	}
	if err := s.recorder.Record(ctx, tx, activity.RecordInput{
		MoveID:    move.ID,
		ActorID:   actor,
		ActorRole: role,
		Type:      enums.ActivityTypeAgentAssigned,
		Title:     fmt.Sprintf("Agent %s assigned", agent.Name),
		Metadata:  metadata,
	}); err != nil {
		return err
	}

	moveID := move.ID
	if err := s.notifier.Notify(ctx, tx, notifications.NotifyInput{
		UserID: agent.ID,
		MoveID: &moveID,
		Type:   enums.NotificationTypeAgentAssigned,
		Title:  "New move assigned to you",
		Body:   fmt.Sprintf("You have been assigned to %s (%s to %s).", move.Title, move.FromCity, move.ToCity),
	}); err != nil {
		return err
	}
	return s.notifier.Notify(ctx, tx, notifications.NotifyInput{
		UserID: move.UserID,
		MoveID: &moveID,
		Type:   enums.NotificationTypeAgentAssigned,
		Title:  "An agent has been assigned",
		Body:   fmt.Sprintf("%s will handle your move.", agent.Name),
	})
}

// target picks the city and coordinates assignment optimizes for: the
// destination when known, otherwise the origin.
func target(move *models.Move) (string, *float64, *float64) {
	if move.ToCity != "" {
		return move.ToCity, move.ToLat, move.ToLng
	}
	return move.FromCity, move.FromLat, move.FromLng
}
