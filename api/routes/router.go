package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amitsingh12ap/moveassist/api/controllers"
	"github.com/amitsingh12ap/moveassist/api/middleware"
	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/admin"
	"github.com/amitsingh12ap/moveassist/internal/assignment"
	"github.com/amitsingh12ap/moveassist/internal/auth"
	"github.com/amitsingh12ap/moveassist/internal/disputes"
	"github.com/amitsingh12ap/moveassist/internal/documents"
	"github.com/amitsingh12ap/moveassist/internal/flags"
	"github.com/amitsingh12ap/moveassist/internal/inventory"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/notifications"
	"github.com/amitsingh12ap/moveassist/internal/payments"
	"github.com/amitsingh12ap/moveassist/internal/plans"
	"github.com/amitsingh12ap/moveassist/internal/pricing"
	"github.com/amitsingh12ap/moveassist/internal/quotes"
	"github.com/amitsingh12ap/moveassist/internal/ratings"
	"github.com/amitsingh12ap/moveassist/internal/users"
	"github.com/amitsingh12ap/moveassist/pkg/config"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
	pkgredis "github.com/amitsingh12ap/moveassist/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Cfg   *config.Config
	Logg  *logger.Logger
	DB    controllers.Pinger
	Cache controllers.Pinger

	IdempotencyStore pkgredis.IdempotencyStore

	MovesRepo moves.Repository

	AuthService         auth.Service
	UsersService        users.Service
	MovesService        moves.Service
	PaymentsService     payments.Service
	QuotesService       quotes.Service
	PlansService        plans.Service
	InventoryService    inventory.Service
	AssignmentService   assignment.Service
	PricingService      pricing.Service
	DisputesService     disputes.Service
	DocumentsService    documents.Service
	RatingsService      ratings.Service
	NotificationService notifications.Service
	ActivityRecorder    activity.Recorder
	AdminService        admin.Service
	FlagsService        flags.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Cfg, d.Logg

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, d.Cache, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.Register(d.AuthService, logg))
			r.Post("/login", controllers.Login(d.AuthService, logg))
		})

		// Open cost calculator, no account needed.
		r.Post("/pricing/estimate", controllers.EstimatePrice(d.PricingService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(d.IdempotencyStore, cfg.Idempotency.TTL, logg))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", controllers.GetProfile(d.UsersService, logg))
				r.Patch("/", controllers.UpdateProfile(d.UsersService, logg))
				r.With(middleware.RequireRole(enums.UserRoleAgent, logg)).
					Patch("/availability", controllers.SetAvailability(d.UsersService, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(d.NotificationService, logg))
				r.Get("/unread-count", controllers.UnreadNotificationCount(d.NotificationService, logg))
				r.Post("/{notificationID}/read", controllers.MarkNotificationRead(d.NotificationService, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(d.NotificationService, logg))
			})

			r.Get("/agents/{agentID}/ratings", controllers.ListAgentRatings(d.RatingsService, logg))

			r.Route("/moves", func(r chi.Router) {
				r.Post("/", controllers.CreateMove(d.MovesService, logg))
				r.Get("/", controllers.ListMoves(d.MovesService, logg))

				r.Route("/{moveID}", func(r chi.Router) {
					r.Get("/", controllers.GetMove(d.MovesService, logg))
					r.Patch("/", controllers.UpdateMove(d.MovesService, logg))
					r.Delete("/", controllers.DeleteMove(d.MovesService, logg))
					r.Patch("/status", controllers.UpdateMoveStatus(d.MovesService, logg))
					r.Post("/complete", controllers.CompleteMove(d.MovesService, logg))
					r.Get("/activity", controllers.MoveActivity(d.MovesService, d.ActivityRecorder, logg))
					r.Post("/activity", controllers.AddMoveNote(d.MovesService, d.ActivityRecorder, logg))

					// The final invoice is only released once the balance clears.
					r.With(middleware.FullPaymentGate(middleware.ResolveMoveParam(d.MovesRepo, "moveID"), logg)).
						Get("/invoice", controllers.MoveInvoice(d.MovesService, d.PaymentsService, logg))

					r.Post("/pricing", controllers.SetMovePricing(d.PaymentsService, logg))
					r.Get("/estimate", controllers.GetMoveEstimate(d.PricingService, logg))

					r.Route("/payments", func(r chi.Router) {
						r.Get("/", controllers.ListMovePayments(d.PaymentsService, logg))
						r.Post("/token", controllers.InitiateTokenPayment(d.PaymentsService, logg))
						r.Post("/balance", controllers.PayBalance(d.PaymentsService, logg))
						r.Post("/online", controllers.PayOnline(d.PaymentsService, logg))
						r.With(middleware.RequireRole(enums.UserRoleAgent, logg)).
							Post("/cash", controllers.MarkCashReceived(d.PaymentsService, logg))
					})

					r.Route("/quote", func(r chi.Router) {
						r.Get("/", controllers.GetQuote(d.QuotesService, logg))
						r.With(middleware.RequireRole(enums.UserRoleAgent, logg)).
							Post("/", controllers.SubmitQuote(d.QuotesService, logg))
					})

					r.Route("/plan", func(r chi.Router) {
						r.Get("/", controllers.GetPlan(d.PlansService, logg))
						r.With(middleware.RequireRole(enums.UserRoleAgent, logg)).
							Put("/", controllers.UpsertPlan(d.PlansService, logg))
						r.Post("/confirm", controllers.ConfirmPlan(d.PlansService, logg))
					})

					r.Post("/assign/auto", controllers.AutoAssignAgent(d.AssignmentService, logg))

					// Inventory stays locked until the token payment clears.
					r.Group(func(r chi.Router) {
						r.Use(middleware.PaymentGate(middleware.ResolveMoveParam(d.MovesRepo, "moveID"), logg))

						r.Route("/boxes", func(r chi.Router) {
							r.Post("/", controllers.CreateBox(d.InventoryService, logg))
							r.Get("/", controllers.ListBoxes(d.InventoryService, logg))
						})
						r.Route("/furniture", func(r chi.Router) {
							r.Post("/", controllers.CreateFurniture(d.InventoryService, logg))
							r.Get("/", controllers.ListFurniture(d.InventoryService, logg))
						})
					})

					r.Route("/disputes", func(r chi.Router) {
						r.Post("/", controllers.RaiseDispute(d.DisputesService, logg))
					})

					r.Route("/documents", func(r chi.Router) {
						r.Post("/", controllers.UploadDocument(d.DocumentsService, logg))
						r.Get("/", controllers.ListDocuments(d.DocumentsService, logg))
					})

					r.Route("/rating", func(r chi.Router) {
						r.Post("/", controllers.SubmitRating(d.RatingsService, logg))
						r.Get("/", controllers.GetMoveRating(d.RatingsService, logg))
					})
				})
			})

			r.With(middleware.PaymentGate(middleware.ResolveMoveByBoxQR(d.MovesRepo, "qrCode"), logg)).
				Post("/boxes/{qrCode}/scan", controllers.ScanBox(d.InventoryService, logg))

			r.Patch("/boxes/{boxID}", controllers.UpdateBox(d.InventoryService, logg))
			r.Delete("/boxes/{boxID}", controllers.DeleteBox(d.InventoryService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.PaymentGate(middleware.ResolveMoveByFurniture(d.MovesRepo, "itemID"), logg))
				r.Patch("/furniture/{itemID}", controllers.UpdateFurniture(d.InventoryService, logg))
				r.Delete("/furniture/{itemID}", controllers.DeleteFurniture(d.InventoryService, logg))
				r.Post("/furniture/{itemID}/photos", controllers.AddFurniturePhoto(d.InventoryService, logg))
			})

			r.Delete("/documents/{documentID}", controllers.DeleteDocument(d.DocumentsService, logg))

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))

				r.Get("/dashboard", controllers.AdminDashboard(d.AdminService, logg))

				r.Route("/users", func(r chi.Router) {
					r.Get("/", controllers.AdminListUsers(d.AdminService, logg))
					r.Patch("/{userID}/role", controllers.AdminSetUserRole(d.AdminService, logg))
					r.Patch("/{userID}/active", controllers.AdminSetUserActive(d.AdminService, logg))
				})
				r.Post("/agents", controllers.AdminCreateAgent(d.AdminService, logg))

				r.Route("/payments", func(r chi.Router) {
					r.Get("/pending", controllers.AdminListPendingVerifications(d.PaymentsService, logg))
					r.Post("/{paymentID}/verify", controllers.AdminVerifyPayment(d.PaymentsService, logg))
					r.Post("/{paymentID}/verify-token", controllers.AdminVerifyTokenPayment(d.PaymentsService, logg))
					r.Post("/{paymentID}/verify-balance", controllers.AdminVerifyBalancePayment(d.PaymentsService, logg))
				})

				r.Route("/moves/{moveID}", func(r chi.Router) {
					r.Post("/payments/mark-paid", controllers.AdminMarkPaid(d.PaymentsService, logg))
					r.Post("/force-activate", controllers.AdminForceActivate(d.MovesService, logg))
					r.Post("/assign", controllers.AssignAgent(d.AssignmentService, logg))
				})

				r.Route("/disputes", func(r chi.Router) {
					r.Get("/", controllers.ListDisputes(d.DisputesService, logg))
					r.Get("/{disputeID}", controllers.GetDispute(d.DisputesService, logg))
					r.Post("/{disputeID}/resolve", controllers.ResolveDispute(d.DisputesService, logg))
				})

				r.Route("/pricing", func(r chi.Router) {
					r.Route("/configs", func(r chi.Router) {
						r.Get("/", controllers.AdminListPricingConfigs(d.PricingService, logg))
						r.Post("/", controllers.AdminCreatePricingConfig(d.PricingService, logg))
						r.Patch("/{configID}", controllers.AdminUpdatePricingConfig(d.PricingService, logg))
					})
					r.Route("/overrides", func(r chi.Router) {
						r.Get("/", controllers.AdminListPricingOverrides(d.PricingService, logg))
						r.Post("/", controllers.AdminCreatePricingOverride(d.PricingService, logg))
						r.Patch("/{overrideID}", controllers.AdminUpdatePricingOverride(d.PricingService, logg))
						r.Delete("/{overrideID}", controllers.AdminDeletePricingOverride(d.PricingService, logg))
					})
				})

				r.Route("/flags", func(r chi.Router) {
					r.Get("/", controllers.AdminListFlags(d.FlagsService, logg))
					r.Put("/", controllers.AdminSetFlag(d.FlagsService, logg))
					r.Delete("/{flagKey}", controllers.AdminDeleteFlag(d.FlagsService, logg))
				})
			})
		})
	})

	return r
}
