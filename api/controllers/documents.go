package controllers

import (
	"net/http"

	"github.com/amitsingh12ap/moveassist/api/middleware"
	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/api/validators"
	"github.com/amitsingh12ap/moveassist/internal/documents"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

type uploadDocumentRequest struct {
	Name    string `json:"name" validate:"required"`
	DocType string `json:"doc_type"`
	FileURL string `json:"file_url" validate:"required,url"`
}

func documentActor(r *http.Request) documents.Actor {
	return documents.Actor{
		ID:   middleware.UserIDFromContext(r.Context()),
		Role: middleware.RoleFromContext(r.Context()),
	}
}

func UploadDocument(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req uploadDocumentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		document, err := svc.Upload(r.Context(), documents.UploadInput{
			MoveID:  moveID,
			Actor:   documentActor(r),
			Name:    req.Name,
			DocType: req.DocType,
			FileURL: req.FileURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, document)
	}
}

func ListDocuments(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ListByMove(r.Context(), moveID, documentActor(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func DeleteDocument(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		documentID, err := parseUUIDParam(r, "documentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), documentID, documentActor(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
