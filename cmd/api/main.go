package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"casehub-backend/internal/admin"
	"casehub-backend/internal/auth"
	"casehub-backend/internal/cache"
	"casehub-backend/internal/cases"
	"casehub-backend/internal/config"
	"casehub-backend/internal/content"
	"casehub-backend/internal/db"
	"casehub-backend/internal/inquiries"
	"casehub-backend/internal/middleware"
	"casehub-backend/internal/notifications"
	"casehub-backend/internal/search"
	"casehub-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "casehub-backend",
		}
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSenderEmail, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	}

	val := validation.New()
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	loader := content.NewLoader(cfg.ContentDir, cfg.DefaultLocale, cfg.Locales, logger)
	catalog := content.NewCatalog(loader)
	index := search.New()

	// The index is built once before the server starts accepting traffic,
	// then only replaced via the admin rebuild endpoint.
	items, err := loader.Load(ctx, cfg.DefaultLocale)
	if err != nil {
		logger.Error("initial content load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	index.Build(content.SearchDocuments(items))
	logger.Info("search index built", slog.Int("documents", index.Len()))

	contentHandler := content.NewHandler(loader, catalog, index, cacheStore, cacheTTL, cfg.Locales, logger)

	casesRepo := cases.NewRepository(cols.Cases)
	casesService := cases.NewService(casesRepo, cfg.Locales)
	casesHandler := cases.NewHandler(casesService, val, logger)

	inquiriesRepo := inquiries.NewRepository(cols.Inquiries)
	var notifier inquiries.Notifier
	if mailer != nil {
		notifier = mailer
	}
	inquiriesService := inquiries.NewService(inquiriesRepo, notifier, logger)
	inquiriesHandler := inquiries.NewHandler(inquiriesService, val, logger)

	adminRepo := admin.NewRepository(cols.AdminUsers)
	adminService := admin.NewService(adminRepo, cfg.IsAdminEmail)
	adminHandler := admin.NewHandler(adminService, jwtManager, val, cfg.CookieSecure, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	window := time.Duration(cfg.RateLimitWindowSec) * time.Second
	inquiriesLimiter := middleware.NewRateLimiter(cfg.RateLimitInquiries, window)
	searchLimiter := middleware.NewRateLimiter(cfg.RateLimitSearch, window)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/cases", contentHandler.List)
		api.Get("/cases/categories", contentHandler.Categories)
		api.Get("/cases/monetization-types", contentHandler.MonetizationTypes)
		api.With(searchLimiter.Middleware).Get("/cases/search", contentHandler.Search)
		api.Get("/cases/{slug}", contentHandler.GetBySlug)

		api.With(inquiriesLimiter.Middleware).Post("/inquiries", inquiriesHandler.Create)

		api.Route("/admin", func(adminRouter chi.Router) {
			adminRouter.Post("/auth/login", adminHandler.Login)
			adminRouter.Post("/auth/refresh", adminHandler.Refresh)
			adminRouter.Post("/auth/logout", adminHandler.Logout)

			// chi requires middlewares before routes, so the protected
			// surface lives on a sub-router.
			adminRouter.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager, cfg.IsAdminEmail))
				protected.Get("/cases", casesHandler.AdminList)
				protected.Post("/cases", casesHandler.AdminCreate)
				protected.Put("/cases/{id}", casesHandler.AdminUpdate)
				protected.Delete("/cases/{id}", casesHandler.AdminDelete)
				protected.Get("/inquiries", inquiriesHandler.AdminList)
				protected.Put("/inquiries/{id}/status", inquiriesHandler.AdminUpdateStatus)
				protected.Post("/search/rebuild", contentHandler.RebuildSearch)
			})
		})
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.ServerAddr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
}
