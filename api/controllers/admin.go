package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/amitsingh12ap/moveassist/api/middleware"
	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/api/validators"
	"github.com/amitsingh12ap/moveassist/internal/admin"
	"github.com/amitsingh12ap/moveassist/internal/flags"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/payments"
	"github.com/amitsingh12ap/moveassist/internal/pricing"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

type createAgentRequest struct {
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     *string  `json:"phone,omitempty"`
	City      *string  `json:"city,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

type verifyPaymentRequest struct {
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes,omitempty"`
}

type markPaidRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Mode   string          `json:"mode" validate:"required"`
	Notes  *string         `json:"notes,omitempty"`
}

type setFlagRequest struct {
	Key         string  `json:"key" validate:"required"`
	Enabled     bool    `json:"enabled"`
	Description *string `json:"description,omitempty"`
}

func AdminDashboard(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

func AdminCreateAgent(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAgentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.CreateAgent(r.Context(), admin.CreateAgentInput{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			City:      req.City,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func AdminListUsers(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := enums.UserRoleCustomer
		if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
			parsed, err := enums.ParseUserRole(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role filter"))
				return
			}
			role = parsed
		}
		items, err := svc.ListUsers(r.Context(), role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func AdminSetUserRole(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req setRoleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := enums.ParseUserRole(req.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}
		user, err := svc.SetUserRole(r.Context(), userID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func AdminSetUserActive(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUUIDParam(r, "userID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req setActiveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SetUserActive(r.Context(), userID, req.Active); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"active": req.Active})
	}
}

func AdminListPendingVerifications(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListPendingVerifications(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminVerifyPayment approves or rejects a payment awaiting verification,
// whatever its type.
func AdminVerifyPayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return verifyPaymentHandler(svc.AdminVerifyPayment, logg)
}

// AdminVerifyTokenPayment is the strict variant that only accepts token
// payments, so a mistyped id cannot approve a balance payment.
func AdminVerifyTokenPayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return verifyPaymentHandler(svc.VerifyToken, logg)
}

// AdminVerifyBalancePayment is the strict variant that only accepts balance
// payments.
func AdminVerifyBalancePayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return verifyPaymentHandler(svc.VerifyBalance, logg)
}

func verifyPaymentHandler(verify func(context.Context, payments.VerifyInput) error, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paymentID, err := parseUUIDParam(r, "paymentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req verifyPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := verify(r.Context(), payments.VerifyInput{
			PaymentID: paymentID,
			AdminID:   middleware.UserIDFromContext(r.Context()),
			Approve:   req.Approve,
			Notes:     req.Notes,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"approved": req.Approve})
	}
}

func AdminMarkPaid(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req markPaidRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mode, err := parseMode(req.Mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payment, err := svc.AdminMarkPaid(r.Context(), payments.AdminMarkPaidInput{
			MoveID:  moveID,
			AdminID: middleware.UserIDFromContext(r.Context()),
			Amount:  req.Amount,
			Mode:    mode,
			Notes:   req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// AdminForceActivate skips payment verification and activates a move.
func AdminForceActivate(svc moves.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moveID, err := parseUUIDParam(r, "moveID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		move, err := svc.ForceActivate(r.Context(), moveID, middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, move)
	}
}

func AdminListFlags(svc flags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func AdminSetFlag(svc flags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setFlagRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		flag, err := svc.Set(r.Context(), flags.SetInput{
			Key:         req.Key,
			Enabled:     req.Enabled,
			Description: req.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flag)
	}
}

func AdminDeleteFlag(svc flags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "flagKey")
		if err := svc.Delete(r.Context(), key); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func AdminListPricingConfigs(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListConfigs(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func AdminCreatePricingConfig(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg models.PricingConfig
		if err := validators.DecodeJSONBody(r, &cfg); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateConfig(r.Context(), &cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdatePricingConfig(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configID, err := parseUUIDParam(r, "configID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var updates map[string]any
		if err := validators.DecodeJSONMap(r, &updates); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateConfig(r.Context(), configID, updates); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}

func AdminListPricingOverrides(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListOverrides(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func AdminCreatePricingOverride(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var override models.PricingOverride
		if err := validators.DecodeJSONBody(r, &override); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.CreateOverride(r.Context(), &override)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminUpdatePricingOverride(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overrideID, err := parseUUIDParam(r, "overrideID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var updates map[string]any
		if err := validators.DecodeJSONMap(r, &updates); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.UpdateOverride(r.Context(), overrideID, updates); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}

func AdminDeletePricingOverride(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overrideID, err := parseUUIDParam(r, "overrideID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteOverride(r.Context(), overrideID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
