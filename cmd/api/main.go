package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gahlan/api/internal/app"
	"gahlan/api/internal/assist"
	"gahlan/api/internal/config"
	"gahlan/api/internal/content"
	"gahlan/api/internal/email"
	"gahlan/api/internal/kv"
	"gahlan/api/internal/media"
	"gahlan/api/internal/search"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var (
		backend kv.Store
		pinger  app.Pinger
	)
	switch {
	case strings.TrimSpace(cfg.RedisURL) != "":
		log.Printf("Using Redis for site state")
		redisStore, err := kv.NewRedisStore(cfg.RedisURL, cfg.Namespace)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		backend = redisStore
		pinger = redisStore
	case strings.TrimSpace(cfg.DatabaseURL) != "":
		log.Printf("Using PostgreSQL for site state")
		pgStore, err := kv.NewPostgresStore(ctx, cfg.DatabaseURL, cfg.Namespace)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		backend = pgStore
		pinger = pgStore
	default:
		log.Printf("WARNING: no REDIS_URL or DATABASE_URL set, site state is in-memory only")
		backend = kv.NewMemoryStore()
	}
	defer backend.Close()

	store := content.NewStore(backend)

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
		defer meiliClient.Close()
	}
	searchService := search.NewService(meiliClient, store)

	assistService := assist.NewService(cfg.GeminiAPIKey, cfg.GeminiModel)

	mediaService := media.NewService(ctx, media.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
		MaxBytes:  cfg.MaxUploadBytes,
	})
	if mediaService.ObjectStorage() {
		log.Printf("Using MinIO bucket %s for image uploads", cfg.MinioBucket)
	}

	emailService := email.NewService(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
		NotifyTo: cfg.NotifyEmail,
	})

	service := app.New(cfg, store, assistService, searchService, mediaService, emailService)
	if err := service.Bootstrap(ctx); err != nil {
		log.Printf("WARNING: bootstrap error (serving compiled-in defaults): %v", err)
	}

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin, pinger)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Gahlan API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
