package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/api/responses"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
)

// MoveResolver loads the move a request is acting on.
type MoveResolver func(ctx context.Context, r *http.Request) (*models.Move, error)

type moveFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Move, error)
	FindByBoxQR(ctx context.Context, qrCode string) (*models.Move, error)
	FindByFurnitureItem(ctx context.Context, itemID uuid.UUID) (*models.Move, error)
}

// ResolveMoveParam loads the move from a UUID path parameter.
func ResolveMoveParam(repo moveFinder, param string) MoveResolver {
	return func(ctx context.Context, r *http.Request) (*models.Move, error) {
		id, err := uuid.Parse(chi.URLParam(r, param))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid move id")
		}
		return repo.Find(ctx, id)
	}
}

// ResolveMoveByBoxQR loads the move owning the box named by a QR path parameter.
func ResolveMoveByBoxQR(repo moveFinder, param string) MoveResolver {
	return func(ctx context.Context, r *http.Request) (*models.Move, error) {
		qr := chi.URLParam(r, param)
		if qr == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "qr code required")
		}
		return repo.FindByBoxQR(ctx, qr)
	}
}

// ResolveMoveByFurniture loads the move owning a furniture item path parameter.
func ResolveMoveByFurniture(repo moveFinder, param string) MoveResolver {
	return func(ctx context.Context, r *http.Request) (*models.Move, error) {
		id, err := uuid.Parse(chi.URLParam(r, param))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id")
		}
		return repo.FindByFurnitureItem(ctx, id)
	}
}

// PaymentGate blocks access to post-activation resources until the move's
// token payment has been verified. Admins bypass the gate.
func PaymentGate(resolve MoveResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return gate(resolve, logg, func(move *models.Move) error {
		if !move.Status.IsPreActive() {
			return nil
		}
		return pkgerrors.New(pkgerrors.CodePaymentRequired, "token payment required before accessing move resources").
			WithDetails(map[string]any{
				"move_status":    move.Status,
				"payment_status": move.PaymentStatus,
			})
	})
}

// FullPaymentGate blocks final report surfaces until every rupee on the move
// is verified or the balance was explicitly waived.
func FullPaymentGate(resolve MoveResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return gate(resolve, logg, func(move *models.Move) error {
		switch move.PaymentStatus {
		case enums.MovePaymentStatusFullyPaid, enums.MovePaymentStatusWaived:
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeFullPaymentRequired, "full payment required before downloading reports").
			WithDetails(map[string]any{"payment_status": move.PaymentStatus})
	})
}

func gate(resolve MoveResolver, logg *logger.Logger, check func(*models.Move) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) == enums.UserRoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			move, err := resolve(r.Context(), r)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					err = pkgerrors.New(pkgerrors.CodeNotFound, "move not found")
				}
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			if err := check(move); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
