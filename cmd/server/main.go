package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kitlog/kitlog-api/internal/auth"
	"github.com/kitlog/kitlog-api/internal/config"
	"github.com/kitlog/kitlog-api/internal/database"
	"github.com/kitlog/kitlog-api/internal/handler"
	"github.com/kitlog/kitlog-api/internal/middleware"
	"github.com/kitlog/kitlog-api/internal/queue"
	"github.com/kitlog/kitlog-api/internal/repository"
	"github.com/kitlog/kitlog-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting, response cache and auth cache disabled")
	}

	users := repository.NewUserRepo(db)
	teams := repository.NewTeamRepo(db)
	members := repository.NewMembershipRepo(db)
	invites := repository.NewInvitationRepo(db)
	equipment := repository.NewEquipmentRepo(db)
	checkouts := repository.NewCheckoutRepo(db)
	signups := repository.NewSignupRepo(db)

	var intr auth.Introspector
	switch cfg.AuthMode {
	case config.AuthModeLocal:
		intr = auth.NewLocalIntrospector(cfg.JWTSecret)
	default:
		intr = auth.NewCachedIntrospector(
			auth.NewAuth0Introspector(cfg.Auth0Domain), rdb, 5*time.Minute)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(users),
		Users:       handler.NewUserHandler(users),
		Teams:       handler.NewTeamHandler(teams, members),
		Members:     handler.NewMemberHandler(teams, members),
		Invitations: handler.NewInvitationHandler(teams, members, invites, cfg.InviteTTLDays),
		Equipment:   handler.NewEquipmentHandler(equipment),
		Checkouts:   handler.NewCheckoutHandler(checkouts),
		Signups:     handler.NewSignupHandler(signups),
	}
	// The cache key ignores the caller's identity, so only unauthenticated
	// routes may sit behind the response cache.
	router.RegisterPublic(e, h, middleware.ResponseCache(config.LoadCacheConfig(), rdb))
	router.RegisterAPI(e, h, middleware.Authenticate(intr, users))

	go queue.StartInviteConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, auth=%s)", addr, cfg.Env, cfg.AuthMode)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
