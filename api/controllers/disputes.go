package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/api/middleware"
	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/api/validators"
	"github.com/amitsingh12ap/moveassist/internal/disputes"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

type raiseDisputeRequest struct {
	FurnitureID *uuid.UUID `json:"furniture_id,omitempty"`
	Description string     `json:"description" validate:"required"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
}

type resolveDisputeRequest struct {
	Status     string  `json:"status" validate:"required"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

func RaiseDispute(svc disputes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req raiseDisputeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dispute, err := svc.Raise(r.Context(), disputes.RaiseInput{
			MoveID:      moveID,
			RaisedBy:    middleware.UserIDFromContext(r.Context()),
			FurnitureID: req.FurnitureID,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dispute)
	}
}

func ListDisputes(svc disputes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := disputes.ListFilters{}
		if raw := strings.TrimSpace(r.URL.Query().Get("move_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid move_id filter"))
				return
			}
			filters.MoveID = &id
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseDisputeStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		items, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetDispute(svc disputes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		disputeID, err := parseUUIDParam(r, "disputeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dispute, err := svc.Get(r.Context(), disputeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dispute)
	}
}

func ResolveDispute(svc disputes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		disputeID, err := parseUUIDParam(r, "disputeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req resolveDisputeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseDisputeStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid dispute status"))
			return
		}
		dispute, err := svc.Resolve(r.Context(), disputes.ResolveInput{
			DisputeID:  disputeID,
			AdminID:    middleware.UserIDFromContext(r.Context()),
			Status:     status,
			AdminNotes: req.AdminNotes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dispute)
	}
}
