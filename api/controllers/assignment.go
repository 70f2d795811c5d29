package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/api/middleware"
	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/api/validators"
	"github.com/amitsingh12ap/moveassist/internal/assignment"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

type manualAssignRequest struct {
	AgentID uuid.UUID `json:"agent_id" validate:"required"`
}

// AutoAssignAgent scores the available agents in the move's origin city and
// assigns the best one.
func AutoAssignAgent(svc assignment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.AutoAssign(r.Context(), moveID,
			middleware.UserIDFromContext(r.Context()),
			middleware.RoleFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AssignAgent sets a specific agent on a move. Admin only.
func AssignAgent(svc assignment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req manualAssignRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		move, err := svc.Assign(r.Context(), moveID, req.AgentID, middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, move)
	}
}
