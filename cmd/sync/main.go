package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"casehub-backend/internal/admin"
	"casehub-backend/internal/cases"
	"casehub-backend/internal/config"
	"casehub-backend/internal/content"
	"casehub-backend/internal/db"
)

// Mirrors the Markdown content tree into the cases collection and, when the
// seed variables are set, bootstraps an admin account. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	loader := content.NewLoader(cfg.ContentDir, cfg.DefaultLocale, cfg.Locales, logger)
	service := cases.NewService(cases.NewRepository(cols.Cases), cfg.Locales)

	for _, locale := range cfg.Locales {
		items, err := loader.Load(ctx, locale)
		if err != nil {
			log.Fatalf("load %s content: %v", locale, err)
		}
		count, err := service.SyncFromContent(ctx, locale, items)
		if err != nil {
			log.Fatalf("sync %s content: %v", locale, err)
		}
		logger.Info("content synced", slog.String("locale", locale), slog.Int("count", count))
	}

	seedEmail := os.Getenv("ADMIN_SEED_EMAIL")
	seedPassword := os.Getenv("ADMIN_SEED_PASSWORD")
	if seedEmail != "" && seedPassword != "" {
		adminService := admin.NewService(admin.NewRepository(cols.AdminUsers), cfg.IsAdminEmail)
		user, err := adminService.SeedUser(ctx, seedEmail, os.Getenv("ADMIN_SEED_NAME"), seedPassword)
		if err != nil {
			log.Fatalf("seed admin user: %v", err)
		}
		logger.Info("admin user seeded", slog.String("email", user.Email))
	}
}
