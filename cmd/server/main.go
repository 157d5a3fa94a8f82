package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/fmbfi/scholar-portal/internal/auth"       // federated sign-in provider
	"github.com/fmbfi/scholar-portal/internal/config"     // internal config loader
	"github.com/fmbfi/scholar-portal/internal/database"   // database connector
	"github.com/fmbfi/scholar-portal/internal/handler"    // HTTP handlers
	"github.com/fmbfi/scholar-portal/internal/middleware" // rate limiting and caching
	"github.com/fmbfi/scholar-portal/internal/queue"      // registration audit consumer
	"github.com/fmbfi/scholar-portal/internal/repository" // DB repositories
	"github.com/fmbfi/scholar-portal/internal/router"     // route registration
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.OpenFromConfig(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; caching and rate limiting disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	students := repository.NewStudentRepo(db)
	schools := repository.NewSchoolRepo(db)
	grades := repository.NewGradeRepo(db)
	announcements := repository.NewAnnouncementRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	studentHandler := handler.NewStudentHandler(users, students)
	schoolHandler := handler.NewSchoolHandler(students, schools)
	gradeHandler := handler.NewGradeHandler(grades)
	announcementHandler := handler.NewAnnouncementHandler(announcements)
	dashboardHandler := handler.NewDashboardHandler(users, students, schools, announcements)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, rateLimit)
	router.RegisterPortal(e, cfg.JWTSecret, studentHandler, schoolHandler, gradeHandler, announcementHandler, cache)
	router.RegisterPages(e, cfg.JWTSecret, dashboardHandler)

	if cfg.GoogleEnabled() {
		provider := auth.NewGoogleProvider(auth.GoogleConfig{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
		})
		router.RegisterOAuth(e, handler.NewOAuthHandler(cfg, users, provider))
	}

	// Background audit consumer; runs its own reconnect loop.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
