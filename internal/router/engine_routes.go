package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/SaharBarak/BeenThere-sub000/internal/handler"
	"github.com/SaharBarak/BeenThere-sub000/internal/middleware"
)

// EngineHandlers bundles the handlers behind the authenticated API so
// registration stays one call in main.
type EngineHandlers struct {
	Listings   *handler.ListingHandler
	Feed       *handler.FeedHandler
	Swipes     *handler.SwipeHandler
	Matches    *handler.MatchHandler
	Candidates *handler.CandidateHandler
	Members    *handler.MemberHandler
	Rants      *handler.RantHandler
}

// RegisterEngine registers every matching, membership and rating
// endpoint under /v1 behind JWT auth.  Read-heavy endpoints (feeds and
// rating summaries) additionally go through the Redis response cache;
// rdb may be nil, which disables it.
func RegisterEngine(e *echo.Echo, h EngineHandlers, jwtSecret string, rdb *redis.Client) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("SEEKER", "OWNER"))

	cached := middleware.CacheReads(rdb)

	// Listings.
	auth.POST("/listings", h.Listings.Create)
	auth.GET("/listings/mine", h.Listings.ListOwn)
	auth.GET("/listings/:id", h.Listings.Get)
	auth.DELETE("/listings/:id", h.Listings.Deactivate)

	// Discovery feeds.
	auth.GET("/feed/listings", h.Feed.Listings, cached)
	auth.GET("/feed/roommates", h.Feed.Roommates, cached)

	// Swipe ledger.
	auth.POST("/swipes/listings", h.Swipes.SwipeListing)
	auth.POST("/swipes/users", h.Swipes.SwipeUser)

	// Matches and conversations.
	auth.GET("/matches", h.Matches.List)
	auth.GET("/matches/:id", h.Matches.Get)
	auth.GET("/matches/:id/messages", h.Matches.ListMessages)
	auth.POST("/matches/:id/messages", h.Matches.SendMessage)

	// Candidate queue (shared-room admins).
	auth.GET("/listings/:id/candidates", h.Candidates.List)
	auth.POST("/listings/:id/candidates/:userId/decision", h.Candidates.Decide)

	// Membership registry.
	auth.GET("/listings/:id/members", h.Members.List)
	auth.POST("/listings/:id/members", h.Members.Add)
	auth.DELETE("/listings/:id/members/:userId", h.Members.Remove)

	// Rants and rating summaries.
	auth.POST("/rants", h.Rants.SubmitCombined)
	auth.POST("/rants/roommate", h.Rants.SubmitRoommate)
	auth.GET("/places/:id/ratings", h.Rants.PlaceSummary, cached)
	auth.GET("/users/:id/ratings", h.Rants.PersonSummary, cached)
}
