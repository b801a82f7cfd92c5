package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/freshmarket/market-api/internal/application/account"
	"github.com/freshmarket/market-api/internal/application/catalog"
	"github.com/freshmarket/market-api/internal/application/feedsync"
	"github.com/freshmarket/market-api/internal/application/identity"
	"github.com/freshmarket/market-api/internal/application/sales"
	"github.com/freshmarket/market-api/internal/infrastructure/feed"
	"github.com/freshmarket/market-api/internal/infrastructure/mail"
	infrapdf "github.com/freshmarket/market-api/internal/infrastructure/pdf"
	"github.com/freshmarket/market-api/internal/infrastructure/postgres"
	"github.com/freshmarket/market-api/internal/infrastructure/redisstore"
	httpRouter "github.com/freshmarket/market-api/internal/interfaces/http"
	"github.com/freshmarket/market-api/internal/worker"
	"github.com/freshmarket/market-api/pkg/config"
	"github.com/freshmarket/market-api/pkg/logger"

	_ "github.com/freshmarket/market-api/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis connection")
	}
	defer rdb.Close()

	userRepo := postgres.NewUserRepository(pool)
	historyRepo := postgres.NewPasswordHistoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewSalesReportRepository(pool)
	cartRepo := redisstore.NewCartRepository(rdb)

	idn := identity.NewService(userRepo, historyRepo, identity.Config{
		Secret:             cfg.JWT.Secret,
		Issuer:             cfg.JWT.Issuer,
		SessionExpMinutes:  cfg.JWT.Expiration,
		EmailTokenExpHours: cfg.JWT.EmailTokenExpHours,
	})

	dispatcher := worker.NewDispatcher(rdb)
	accountUC := account.NewUseCase(idn, userRepo, dispatcher,
		account.Config{
			PublicURL:   cfg.Links.PublicURL,
			FrontendURL: cfg.Links.FrontendURL,
			TemplateDir: "./templates",
		},
		account.Options{AssignRole: true, SendConfirmationEmail: true},
		log,
	)

	catalogUC := catalog.NewUseCase(productRepo, cartRepo)
	salesUC := sales.NewUseCase(productRepo, saleRepo, reportRepo, infrapdf.NewSalesReportGenerator())

	// Email delivery: queue consumers sending via SMTP.
	mailer := mail.NewMailer(cfg.SMTP)
	worker.StartPool(ctx, rdb, mailer, 2)

	// Feed sync: one pass at boot, then on the cron schedule.
	var cronRunner *cron.Cron
	if cfg.Feed.BaseURL != "" {
		syncUC := feedsync.NewUseCase(feed.NewClient(cfg.Feed.BaseURL), productRepo, saleRepo, cfg.Feed.OwnerID, log)
		go func() {
			if err := syncUC.Sync(ctx); err != nil {
				log.Error().Err(err).Msg("initial feed sync")
			}
		}()
		if cfg.Feed.Schedule != "" {
			cronRunner = cron.New()
			_, err := cronRunner.AddFunc(cfg.Feed.Schedule, func() {
				if err := syncUC.Sync(ctx); err != nil {
					log.Error().Err(err).Msg("scheduled feed sync")
				}
			})
			if err != nil {
				log.Fatal().Err(err).Str("schedule", cfg.Feed.Schedule).Msg("invalid feed sync schedule")
			}
			cronRunner.Start()
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fresh Market API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AccountUC: accountUC,
		CatalogUC: catalogUC,
		SalesUC:   salesUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")
	stop()
	if cronRunner != nil {
		cronRunner.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
