package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/amitsingh12ap/moveassist/api/routes"
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
	"github.com/amitsingh12ap/moveassist/pkg/db"
	"github.com/amitsingh12ap/moveassist/pkg/logger"
	"github.com/amitsingh12ap/moveassist/pkg/migrate"
	"github.com/amitsingh12ap/moveassist/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	deps, err := buildDeps(cfg, logg, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(deps),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func buildDeps(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (routes.Deps, error) {
	gormDB := dbClient.DB()

	userRepo := users.NewRepository(gormDB)
	movesRepo := moves.NewRepository(gormDB)
	inventoryRepo := inventory.NewRepository(gormDB)

	recorder, err := activity.NewRecorder(activity.NewRepository(gormDB))
	if err != nil {
		return routes.Deps{}, err
	}
	notificationsSvc, err := notifications.NewService(notifications.NewRepository(gormDB))
	if err != nil {
		return routes.Deps{}, err
	}
	flagsSvc, err := flags.NewService(flags.NewRepository(gormDB))
	if err != nil {
		return routes.Deps{}, err
	}
	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:     userRepo,
		Limiter:      redisClient,
		JWTConfig:    cfg.JWT,
		PasswordCfg:  cfg.Password,
		RateLimitCfg: cfg.AuthRateLimit,
	})
	if err != nil {
		return routes.Deps{}, err
	}
	usersSvc, err := users.NewService(userRepo)
	if err != nil {
		return routes.Deps{}, err
	}
	movesSvc, err := moves.NewService(movesRepo, dbClient, recorder, notificationsSvc, flagsSvc)
	if err != nil {
		return routes.Deps{}, err
	}
	paymentsSvc, err := payments.NewService(payments.NewRepository(gormDB), movesRepo, dbClient, recorder, notificationsSvc, userRepo, cfg.Pricing)
	if err != nil {
		return routes.Deps{}, err
	}
	quotesSvc, err := quotes.NewService(quotes.NewRepository(gormDB), movesRepo, dbClient, recorder, notificationsSvc, cfg.Pricing)
	if err != nil {
		return routes.Deps{}, err
	}
	plansSvc, err := plans.NewService(plans.NewRepository(gormDB), movesRepo, dbClient, recorder, notificationsSvc)
	if err != nil {
		return routes.Deps{}, err
	}
	inventorySvc, err := inventory.NewService(inventoryRepo, movesRepo, dbClient, recorder, notificationsSvc)
	if err != nil {
		return routes.Deps{}, err
	}
	assignmentSvc, err := assignment.NewService(assignment.NewRepository(gormDB), movesRepo, dbClient, recorder, notificationsSvc)
	if err != nil {
		return routes.Deps{}, err
	}
	pricingSvc, err := pricing.NewService(pricing.NewRepository(gormDB))
	if err != nil {
		return routes.Deps{}, err
	}
	disputesSvc, err := disputes.NewService(disputes.NewRepository(gormDB), movesRepo, inventoryRepo, dbClient, recorder, notificationsSvc, userRepo)
	if err != nil {
		return routes.Deps{}, err
	}
	documentsSvc, err := documents.NewService(documents.NewRepository(gormDB), movesRepo, dbClient, recorder)
	if err != nil {
		return routes.Deps{}, err
	}
	ratingsSvc, err := ratings.NewService(ratings.NewRepository(gormDB), movesRepo, userRepo, dbClient, recorder, notificationsSvc)
	if err != nil {
		return routes.Deps{}, err
	}
	adminSvc, err := admin.NewService(admin.NewRepository(gormDB), userRepo, cfg.Password)
	if err != nil {
		return routes.Deps{}, err
	}

	return routes.Deps{
		Cfg:              cfg,
		Logg:             logg,
		DB:               dbClient,
		Cache:            redisClient,
		IdempotencyStore: redisClient,
		MovesRepo:        movesRepo,

		AuthService:         authSvc,
		UsersService:        usersSvc,
		MovesService:        movesSvc,
		PaymentsService:     paymentsSvc,
		QuotesService:       quotesSvc,
		PlansService:        plansSvc,
		InventoryService:    inventorySvc,
		AssignmentService:   assignmentSvc,
		PricingService:      pricingSvc,
		DisputesService:     disputesSvc,
		DocumentsService:    documentsSvc,
		RatingsService:      ratingsSvc,
		NotificationService: notificationsSvc,
		ActivityRecorder:    recorder,
		AdminService:        adminSvc,
		FlagsService:        flagsSvc,
	}, nil
}
