package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campus-market/marketplace-service/internal/api/http"
	"github.com/campus-market/marketplace-service/internal/api/http/handlers"
	"github.com/campus-market/marketplace-service/internal/auth"
	"github.com/campus-market/marketplace-service/internal/config"
	"github.com/campus-market/marketplace-service/internal/events"
	"github.com/campus-market/marketplace-service/internal/observability"
	"github.com/campus-market/marketplace-service/internal/persistence"
	"github.com/campus-market/marketplace-service/internal/repository"
	"github.com/campus-market/marketplace-service/internal/service"
	"github.com/campus-market/marketplace-service/internal/validation"
	"github.com/campus-market/marketplace-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	roommateRepo := repository.NewRoommateRepository(pool)
	tradeRepo := repository.NewTradeRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	sessions := auth.NewSessionManager(redis.Client, cfg.Auth.SessionTTL())
	sessionMiddleware := auth.NewSessionMiddleware(sessions, userRepo, cfg.Auth.SessionCookie)

	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		UserRepo:   userRepo,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	listingService := service.NewListingService(*cfg, service.ListingDependencies{
		PostRepo:     postRepo,
		RoommateRepo: roommateRepo,
		Dispatcher:   dispatcher,
	})
	tradeService := service.NewTradeService(service.TradeDependencies{
		TradeRepo:  tradeRepo,
		PostRepo:   postRepo,
		Dispatcher: dispatcher,
	})

	userValidator := validation.NewUserValidator(cfg.Auth.EmailDomain)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(accountService, userValidator, cfg.Auth.SessionCookie, cfg.Auth.SessionTTL())
	postsHandler := handlers.NewPostsHandler(listingService)
	roommatesHandler := handlers.NewRoommatesHandler(listingService, logger)
	searchHandler := handlers.NewSearchHandler(listingService)
	tradesHandler := handlers.NewTradesHandler(tradeService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            healthHandler,
		Users:             usersHandler,
		Posts:             postsHandler,
		Roommates:         roommatesHandler,
		Search:            searchHandler,
		Trades:            tradesHandler,
		SessionMiddleware: sessionMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
