package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/SaharBarak/BeenThere-sub000/internal/config"
	"github.com/SaharBarak/BeenThere-sub000/internal/database"
	"github.com/SaharBarak/BeenThere-sub000/internal/handler"
	"github.com/SaharBarak/BeenThere-sub000/internal/identity"
	"github.com/SaharBarak/BeenThere-sub000/internal/middleware"
	"github.com/SaharBarak/BeenThere-sub000/internal/queue"
	"github.com/SaharBarak/BeenThere-sub000/internal/repository"
	"github.com/SaharBarak/BeenThere-sub000/internal/router"
	"github.com/SaharBarak/BeenThere-sub000/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; limiter and cache stay off
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	places := repository.NewPlaceRepo(db)
	landlords := repository.NewLandlordRepo(db)
	listings := repository.NewListingRepo(db)
	swipes := repository.NewSwipeRepo(db)
	matches := repository.NewMatchRepo(db)
	members := repository.NewMemberRepo(db)
	candidates := repository.NewCandidateRepo(db)
	rants := repository.NewRantRepo(db)
	messages := repository.NewMessageRepo(db)

	// Services.
	hasher := identity.NewHasher(cfg.PhoneHashSecret)
	listingSvc := service.NewListingService(db, places, listings, members)
	feedSvc := service.NewFeedService(users, listings)
	swipeSvc := service.NewSwipeService(db, users, listings, swipes, matches)
	matchSvc := service.NewMatchService(matches)
	messageSvc := service.NewMessageService(matchSvc, messages)
	memberSvc := service.NewMembershipService(db, users, listings, members)
	candidateSvc := service.NewCandidateService(db, listings, members, candidates, matches)
	rantSvc := service.NewRantService(db, users, places, landlords, rants, hasher, cfg.DefaultCC)
	ratingSvc := service.NewRatingService(users, places, rants)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterEngine(e, router.EngineHandlers{
		Listings:   handler.NewListingHandler(listingSvc),
		Feed:       handler.NewFeedHandler(feedSvc),
		Swipes:     handler.NewSwipeHandler(swipeSvc),
		Matches:    handler.NewMatchHandler(matchSvc, messageSvc),
		Candidates: handler.NewCandidateHandler(candidateSvc),
		Members:    handler.NewMemberHandler(memberSvc),
		Rants:      handler.NewRantHandler(rantSvc, ratingSvc),
	}, cfg.JWTSecret, rdb)

	// Drain match.created in the background; the consumer reconnects on
	// broker failures without touching request serving.
	go func() {
		if err := queue.StartMatchConsumer(); err != nil {
			log.Printf("match consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
