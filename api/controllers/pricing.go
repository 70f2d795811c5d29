package controllers

import (
	"net/http"

	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/api/validators"
	"github.com/amitsingh12ap/moveassist/internal/pricing"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

type estimateRequest struct {
	BHKType        *string `json:"bhk_type,omitempty"`
	DistanceKm     float64 `json:"distance_km"`
	FloorFrom      int     `json:"floor_from"`
	FloorTo        int     `json:"floor_to"`
	HasLiftFrom    bool    `json:"has_lift_from"`
	HasLiftTo      bool    `json:"has_lift_to"`
	HasFragile     bool    `json:"has_fragile"`
	FurnitureCount int     `json:"furniture_count"`
	BoxCount       int     `json:"box_count"`
	FromCity       string  `json:"from_city"`
	ToCity         string  `json:"to_city"`
}

// EstimatePrice runs the pricing engine without persisting anything. It backs
// the public cost calculator.
func EstimatePrice(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req estimateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var bhk *enums.BHKType
		if req.BHKType != nil {
			parsed, err := enums.ParseBHKType(*req.BHKType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bhk type"))
				return
			}
			bhk = &parsed
		}
		breakdown, err := svc.Estimate(r.Context(), pricing.EstimateInput{
			Input: pricing.Input{
				BHKType:        bhk,
				DistanceKm:     req.DistanceKm,
				FloorFrom:      req.FloorFrom,
				FloorTo:        req.FloorTo,
				HasLiftFrom:    req.HasLiftFrom,
				HasLiftTo:      req.HasLiftTo,
				HasFragile:     req.HasFragile,
				FurnitureCount: req.FurnitureCount,
				BoxCount:       req.BoxCount,
				FromCity:       req.FromCity,
				ToCity:         req.ToCity,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, breakdown)
	}
}

// GetMoveEstimate returns the last persisted breakdown for a move.
func GetMoveEstimate(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		estimate, err := svc.GetMoveEstimate(r.Context(), moveID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, estimate)
	}
}
