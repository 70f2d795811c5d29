package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/amitsingh12ap/moveassist/api/middleware"
	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/api/validators"
	"github.com/amitsingh12ap/moveassist/internal/quotes"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

type submitQuoteRequest struct {
	BasePrice     decimal.Decimal `json:"base_price" validate:"required"`
	FloorCharge   decimal.Decimal `json:"floor_charge"`
	FragileCharge decimal.Decimal `json:"fragile_charge"`
	ExtraCharge   decimal.Decimal `json:"extra_charge"`
	Discount      decimal.Decimal `json:"discount"`
	Notes         *string         `json:"notes,omitempty"`
	ItemsSnapshot map[string]any  `json:"items_snapshot,omitempty"`
}

func SubmitQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req submitQuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Submit(r.Context(), quotes.SubmitInput{
			MoveID:        moveID,
			AgentID:       middleware.UserIDFromContext(r.Context()),
			BasePrice:     req.BasePrice,
			FloorCharge:   req.FloorCharge,
			FragileCharge: req.FragileCharge,
			ExtraCharge:   req.ExtraCharge,
			Discount:      req.Discount,
			Notes:         req.Notes,
			ItemsSnapshot: req.ItemsSnapshot,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

func GetQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Get(r.Context(), quotes.GetInput{
			MoveID:    moveID,
			ActorID:   middleware.UserIDFromContext(r.Context()),
			ActorRole: middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
