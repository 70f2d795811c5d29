package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amitsingh12ap/moveassist/api/middleware"
	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/api/validators"
	"github.com/amitsingh12ap/moveassist/internal/inventory"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

type createBoxRequest struct {
	Label    string  `json:"label" validate:"required"`
	Category *string `json:"category,omitempty"`
	Contents *string `json:"contents,omitempty"`
	Fragile  bool    `json:"fragile"`
}

type updateBoxRequest struct {
	Label    *string `json:"label,omitempty"`
	Category *string `json:"category,omitempty"`
	Contents *string `json:"contents,omitempty"`
	Fragile  *bool   `json:"fragile,omitempty"`
}

type scanBoxRequest struct {
	Status   string  `json:"status" validate:"required"`
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type createFurnitureRequest struct {
	Name            string  `json:"name" validate:"required"`
	Category        *string `json:"category,omitempty"`
	ConditionBefore *string `json:"condition_before,omitempty"`
}

type updateFurnitureRequest struct {
	Name           *string `json:"name,omitempty"`
	Category       *string `json:"category,omitempty"`
	Status         *string `json:"status,omitempty"`
	ConditionAfter *string `json:"condition_after,omitempty"`
	DamageNotes    *string `json:"damage_notes,omitempty"`
}

type addPhotoRequest struct {
	PhotoURL          string  `json:"photo_url" validate:"required"`
	PhotoType         string  `json:"photo_type" validate:"required"`
	DamageTagged      bool    `json:"damage_tagged"`
	DamageDescription *string `json:"damage_description,omitempty"`
}

func inventoryActor(r *http.Request) inventory.Actor {
	return inventory.Actor{
		ID:   middleware.UserIDFromContext(r.Context()),
		Role: middleware.RoleFromContext(r.Context()),
	}
}

func CreateBox(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req createBoxRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		box, err := svc.CreateBox(r.Context(), inventory.CreateBoxInput{
			MoveID:   moveID,
			Actor:    inventoryActor(r),
			Label:    req.Label,
			Category: req.Category,
			Contents: req.Contents,
			Fragile:  req.Fragile,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, box)
	}
}

func ListBoxes(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		boxes, err := svc.ListBoxes(r.Context(), moveID, inventoryActor(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, boxes)
	}
}

// ScanBox looks the box up by the QR code on its label and advances its status.
func ScanBox(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qrCode := chi.URLParam(r, "qrCode")
		if qrCode == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "qr code required"))
			return
		}
		var req scanBoxRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseBoxStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid box status"))
			return
		}
		box, err := svc.ScanBox(r.Context(), inventory.ScanBoxInput{
			QRCode:   qrCode,
			Actor:    inventoryActor(r),
			Status:   status,
			Location: req.Location,
			Notes:    req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, box)
	}
}

func UpdateBox(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boxID, err := parseUUIDParam(r, "boxID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateBoxRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		box, err := svc.UpdateBox(r.Context(), inventory.UpdateBoxInput{
			BoxID:    boxID,
			Actor:    inventoryActor(r),
			Label:    req.Label,
			Category: req.Category,
			Contents: req.Contents,
			Fragile:  req.Fragile,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, box)
	}
}

func DeleteBox(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boxID, err := parseUUIDParam(r, "boxID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteBox(r.Context(), boxID, inventoryActor(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func CreateFurniture(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req createFurnitureRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.CreateFurniture(r.Context(), inventory.CreateFurnitureInput{
			MoveID:          moveID,
			Actor:           inventoryActor(r),
			Name:            req.Name,
			Category:        req.Category,
			ConditionBefore: req.ConditionBefore,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func ListFurniture(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ListFurniture(r.Context(), moveID, inventoryActor(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func UpdateFurniture(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseUUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateFurnitureRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := inventory.UpdateFurnitureInput{
			ItemID:         itemID,
			Actor:          inventoryActor(r),
			Name:           req.Name,
			Category:       req.Category,
			ConditionAfter: req.ConditionAfter,
			DamageNotes:    req.DamageNotes,
		}
		if req.Status != nil {
			status, err := enums.ParseFurnitureStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid furniture status"))
				return
			}
			input.Status = &status
		}
		item, err := svc.UpdateFurniture(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func DeleteFurniture(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseUUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteFurniture(r.Context(), itemID, inventoryActor(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func AddFurniturePhoto(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := parseUUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req addPhotoRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		photo, err := svc.AddFurniturePhoto(r.Context(), inventory.AddPhotoInput{
			ItemID:            itemID,
			Actor:             inventoryActor(r),
			PhotoURL:          req.PhotoURL,
			PhotoType:         req.PhotoType,
			DamageTagged:      req.DamageTagged,
			DamageDescription: req.DamageDescription,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, photo)
	}
}
