package controllers

import (
	"net/http"
	"time"

	"github.com/amitsingh12ap/moveassist/api/middleware"
	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/api/validators"
	"github.com/amitsingh12ap/moveassist/internal/plans"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

type upsertPlanRequest struct {
	VehicleType    *string    `json:"vehicle_type,omitempty"`
	VehicleCount   int        `json:"vehicle_count" validate:"required,min=1"`
	CrewSize       int        `json:"crew_size" validate:"required,min=1"`
	BoxesSmall     int        `json:"boxes_small"`
	BoxesMedium    int        `json:"boxes_medium"`
	BoxesLarge     int        `json:"boxes_large"`
	BubbleWrapRoll int        `json:"bubble_wrap_rolls"`
	TapeRolls      int        `json:"tape_rolls"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

func UpsertPlan(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req upsertPlanRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		plan, err := svc.Upsert(r.Context(), plans.UpsertInput{
			MoveID:         moveID,
			AgentID:        middleware.UserIDFromContext(r.Context()),
			VehicleType:    req.VehicleType,
			VehicleCount:   req.VehicleCount,
			CrewSize:       req.CrewSize,
			BoxesSmall:     req.BoxesSmall,
			BoxesMedium:    req.BoxesMedium,
			BoxesLarge:     req.BoxesLarge,
			BubbleWrapRoll: req.BubbleWrapRoll,
			TapeRolls:      req.TapeRolls,
			ScheduledStart: req.ScheduledStart,
			ScheduledEnd:   req.ScheduledEnd,
			Notes:          req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

func ConfirmPlan(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		plan, err := svc.Confirm(r.Context(), moveID, middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}

func GetPlan(svc plans.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		plan, err := svc.Get(r.Context(), plans.GetInput{
			MoveID:    moveID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plan)
	}
}
