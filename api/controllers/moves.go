package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/amitsingh12ap/moveassist/api/middleware"
	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/api/validators"
	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/payments"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

type createMoveRequest struct {
	Title       string     `json:"title" validate:"required"`
	FromAddress string     `json:"from_address" validate:"required"`
	FromCity    string     `json:"from_city" validate:"required"`
	FromLat     *float64   `json:"from_lat,omitempty"`
	FromLng     *float64   `json:"from_lng,omitempty"`
	ToAddress   string     `json:"to_address" validate:"required"`
	ToCity      string     `json:"to_city" validate:"required"`
	ToLat       *float64   `json:"to_lat,omitempty"`
	ToLng       *float64   `json:"to_lng,omitempty"`
	BHKType     *string    `json:"bhk_type,omitempty"`
	FloorFrom   int        `json:"floor_from"`
	FloorTo     int        `json:"floor_to"`
	HasLiftFrom bool       `json:"has_lift_from"`
	HasLiftTo   bool       `json:"has_lift_to"`
	MoveDate    *time.Time `json:"move_date,omitempty"`
}

type updateMoveRequest struct {
	Title       *string    `json:"title,omitempty"`
	FromAddress *string    `json:"from_address,omitempty"`
	FromCity    *string    `json:"from_city,omitempty"`
	FromLat     *float64   `json:"from_lat,omitempty"`
	FromLng     *float64   `json:"from_lng,omitempty"`
	ToAddress   *string    `json:"to_address,omitempty"`
	ToCity      *string    `json:"to_city,omitempty"`
	ToLat       *float64   `json:"to_lat,omitempty"`
	ToLng       *float64   `json:"to_lng,omitempty"`
	BHKType     *string    `json:"bhk_type,omitempty"`
	FloorFrom   *int       `json:"floor_from,omitempty"`
	FloorTo     *int       `json:"floor_to,omitempty"`
	HasLiftFrom *bool      `json:"has_lift_from,omitempty"`
	HasLiftTo   *bool      `json:"has_lift_to,omitempty"`
	MoveDate    *time.Time `json:"move_date,omitempty"`
}

type updateMoveStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func parseBHK(raw *string) (*enums.BHKType, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	bhk, err := enums.ParseBHKType(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bhk type")
	}
	return &bhk, nil
}

func CreateMove(svc moves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMoveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bhk, err := parseBHK(req.BHKType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		move, err := svc.Create(r.Context(), moves.CreateMoveInput{
			UserID:      middleware.UserIDFromContext(r.Context()),
			Title:       req.Title,
			FromAddress: req.FromAddress,
			FromCity:    req.FromCity,
			FromLat:     req.FromLat,
			FromLng:     req.FromLng,
			ToAddress:   req.ToAddress,
			ToCity:      req.ToCity,
			ToLat:       req.ToLat,
			ToLng:       req.ToLng,
			BHKType:     bhk,
			FloorFrom:   req.FloorFrom,
			FloorTo:     req.FloorTo,
			HasLiftFrom: req.HasLiftFrom,
			HasLiftTo:   req.HasLiftTo,
			MoveDate:    req.MoveDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, move)
	}
}

func GetMove(svc moves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		move, err := svc.Get(r.Context(), moves.GetInput{
			MoveID:    moveID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, move)
	}
}

func ListMoves(svc moves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := moves.ListInput{
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
			Limit:     params.Limit,
			Cursor:    params.Cursor,
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseMoveStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			input.Status = &status
		}
		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func UpdateMove(svc moves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateMoveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bhk, err := parseBHK(req.BHKType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		move, err := svc.Update(r.Context(), moves.UpdateMoveInput{
			MoveID:      moveID,
			ActorID:     middleware.UserIDFromContext(r.Context()),
			ActorRole:   middleware.RoleFromContext(r.Context()),
			Title:       req.Title,
			FromAddress: req.FromAddress,
			FromCity:    req.FromCity,
			FromLat:     req.FromLat,
			FromLng:     req.FromLng,
			ToAddress:   req.ToAddress,
			ToCity:      req.ToCity,
			ToLat:       req.ToLat,
			ToLng:       req.ToLng,
			BHKType:     bhk,
			FloorFrom:   req.FloorFrom,
			FloorTo:     req.FloorTo,
			HasLiftFrom: req.HasLiftFrom,
			HasLiftTo:   req.HasLiftTo,
			MoveDate:    req.MoveDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, move)
	}
}

func UpdateMoveStatus(svc moves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateMoveStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseMoveStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		move, err := svc.UpdateStatus(r.Context(), moves.UpdateStatusInput{
			MoveID:    moveID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
			Status:    status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, move)
	}
}

func CompleteMove(svc moves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		move, err := svc.Complete(r.Context(), moves.CompleteInput{
			MoveID:    moveID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, move)
	}
}

func DeleteMove(svc moves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), moves.GetInput{
			MoveID:    moveID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

type addMoveNoteRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// AddMoveNote appends a free-form note to the move's timeline.
func AddMoveNote(movesSvc moves.Service, recorder activity.Recorder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req addMoveNoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID := middleware.UserIDFromContext(r.Context())
		actorRole := middleware.RoleFromContext(r.Context())
		if _, err := movesSvc.Get(r.Context(), moves.GetInput{
			MoveID:    moveID,
			ActorID:   actorID,
			ActorRole: actorRole,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := recorder.Record(r.Context(), nil, activity.RecordInput{
			MoveID:      moveID,
			ActorID:     &actorID,
			ActorRole:   &actorRole,
			Type:        enums.ActivityTypeNote,
			Title:       req.Title,
			Description: req.Description,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]bool{"recorded": true})
	}
}

// MoveInvoice summarises billed and collected amounts. Routed behind the
// full-payment gate so it doubles as the customer's final receipt.
func MoveInvoice(movesSvc moves.Service, paymentsSvc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID := middleware.UserIDFromContext(r.Context())
		actorRole := middleware.RoleFromContext(r.Context())
		move, err := movesSvc.Get(r.Context(), moves.GetInput{
			MoveID:    moveID,
			ActorID:   actorID,
			ActorRole: actorRole,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := paymentsSvc.ListByMove(r.Context(), moveID, actorID, actorRole)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"invoice_number": move.InvoiceNumber,
			"amount_total":   move.AmountTotal,
			"amount_paid":    move.AmountPaid,
			"token_amount":   move.TokenAmount,
			"final_amount":   move.FinalAmount,
			"payment_status": move.PaymentStatus,
			"payments":       rows,
		})
	}
}

// MoveActivity returns the move's timeline. Visibility is enforced by loading
// the move through the service first.
func MoveActivity(movesSvc moves.Service, recorder activity.Recorder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := movesSvc.Get(r.Context(), moves.GetInput{
			MoveID:    moveID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := recorder.ListByMove(r.Context(), moveID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
