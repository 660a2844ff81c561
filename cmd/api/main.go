package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spinacademy/lessons-api/internal/config"
	"github.com/spinacademy/lessons-api/internal/domain/auth"
	"github.com/spinacademy/lessons-api/internal/domain/booking"
	"github.com/spinacademy/lessons-api/internal/domain/instructor"
	"github.com/spinacademy/lessons-api/internal/domain/pricing"
	"github.com/spinacademy/lessons-api/internal/domain/user"
	"github.com/spinacademy/lessons-api/internal/middleware"
	"github.com/spinacademy/lessons-api/internal/pkg/database"
	"github.com/spinacademy/lessons-api/internal/pkg/jwt"
	"github.com/spinacademy/lessons-api/internal/pkg/response"
	"github.com/spinacademy/lessons-api/internal/pkg/storage"
)

// slotCounterAdapter lets the instructor catalog ask the booking
// service for open-slot counts without an import cycle.
type slotCounterAdapter struct {
	svc *booking.Service
}

func (a *slotCounterAdapter) CountOpenSlots(ctx context.Context, instructorID uuid.UUID, date time.Time) (int, error) {
	return a.svc.CountOpenSlots(ctx, instructorID, date)
}

func main() {
	cfg := config.Load()

	setupLogger(cfg)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid booking timezone")
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer database.ClosePostgres(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb != nil {
		defer database.CloseRedis(rdb)
	}

	var store storage.Storage
	if cfg.R2AccountID != "" {
		r2, err := storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init storage")
		}
		store = r2
	} else {
		log.Warn().Msg("R2 not configured, photo uploads disabled")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	userRepo := user.NewRepository(db)
	instructorRepo := instructor.NewRepository(db)
	promoRepo := pricing.NewPromoRepository(db)
	bookingRepo := booking.NewRepository(db, promoRepo)

	resolver := pricing.NewResolver(promoRepo)

	hub := booking.NewHub(rdb)
	go hub.Run(ctx)

	authService := auth.NewService(userRepo, jwtService)
	instructorService := instructor.NewService(instructorRepo, store)
	bookingService := booking.NewService(bookingRepo, instructorRepo, resolver, hub, loc)
	instructorService.SetSlotCounter(&slotCounterAdapter{svc: bookingService})

	authHandler := auth.NewHandler(authService)
	instructorHandler := instructor.NewHandler(instructorService)
	pricingHandler := pricing.NewHandler(resolver)
	bookingHandler := booking.NewHandler(bookingService)

	authMW := middleware.Auth(jwtService)
	adminMW := middleware.RequireAdmin()

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(chimw.Compress(5))
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			response.ServiceUnavailable(w, "STORE_UNAVAILABLE", "Database unreachable")
			return
		}
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMW))
		r.Mount("/instructors", instructorHandler.Routes(authMW, adminMW))
		r.Mount("/pricing", pricingHandler.Routes())
		r.Mount("/bookings", bookingHandler.Routes(authMW))
	})

	r.Get("/ws/slots", hub.ServeWS)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
