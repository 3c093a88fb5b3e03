package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/liorkima5-coder/CityPulseAI/internal/api/http"
	"github.com/liorkima5-coder/CityPulseAI/internal/api/http/handlers"
	"github.com/liorkima5-coder/CityPulseAI/internal/auth"
	"github.com/liorkima5-coder/CityPulseAI/internal/config"
	"github.com/liorkima5-coder/CityPulseAI/internal/events"
	"github.com/liorkima5-coder/CityPulseAI/internal/geo"
	"github.com/liorkima5-coder/CityPulseAI/internal/notify"
	"github.com/liorkima5-coder/CityPulseAI/internal/observability"
	"github.com/liorkima5-coder/CityPulseAI/internal/persistence"
	"github.com/liorkima5-coder/CityPulseAI/internal/repository"
	"github.com/liorkima5-coder/CityPulseAI/internal/service"
	"github.com/liorkima5-coder/CityPulseAI/internal/storage"
	"github.com/liorkima5-coder/CityPulseAI/internal/triage"
	"github.com/liorkima5-coder/CityPulseAI/internal/verify"
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
	ticketRepo := repository.NewTicketRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)

	keywords := triage.DefaultKeywords()
	if cfg.Triage.KeywordsFile != "" {
		loaded, err := triage.LoadKeywords(cfg.Triage.KeywordsFile)
		if err != nil {
			logger.Fatal("failed to load triage keywords", zap.Error(err))
		}
		keywords = loaded
	}
	classifier := triage.NewClassifier(keywords)

	resolver := geo.NewNominatimResolver(cfg.Geocoder.BaseURL, cfg.Geocoder.Locality, cfg.Geocoder.Timeout(), logger)
	uploader := storage.NewHTTPUploader(cfg.Storage.BaseURL, cfg.Storage.Bucket, cfg.Storage.APIKey, logger)
	mailer := notify.NewTemplateMailer(cfg.Notification)
	verifier := verify.NewRecaptchaVerifier(cfg.Captcha)

	dispatcher := events.NewInMemoryDispatcher(logger)

	intakeService := service.NewIntakeService(service.IntakeDependencies{
		TicketRepo:   ticketRepo,
		CategoryRepo: categoryRepo,
		Classifier:   classifier,
		Resolver:     resolver,
		Uploader:     uploader,
		Verifier:     verifier,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	ticketService := service.NewTicketService(ticketRepo, dispatcher)
	categoryService := service.NewCategoryService(categoryRepo, ticketRepo, redis.Client, logger)
	leadService := service.NewLeadService(leadRepo, dispatcher)
	registryService := service.NewRegistryService(ticketRepo, leadRepo)
	authService := service.NewAuthService(cfg.Auth, staffRepo)

	notificationService := service.NewNotificationService(dispatcher, mailer, logger)
	notificationService.RegisterHandlers()

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), staffRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 12 << 20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Intake:         handlers.NewIntakeHandler(intakeService, leadService, categoryService),
		Tickets:        handlers.NewTicketsHandler(ticketService, intakeService),
		Leads:          handlers.NewLeadsHandler(leadService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Registry:       handlers.NewRegistryHandler(registryService),
		Staff:          handlers.NewStaffHandler(authService),
		AuthMiddleware: authMiddleware,
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
