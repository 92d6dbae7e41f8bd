// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, caller identity, logging/redaction, panic
// recovery, metrics, CORS, security headers, idempotency, and rate limiting.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/config"
	"github.com/tbourn/go-sports-backend/internal/domain"
	"github.com/tbourn/go-sports-backend/internal/http/handlers"
	"github.com/tbourn/go-sports-backend/internal/http/middleware"
	"github.com/tbourn/go-sports-backend/internal/repo"
	"github.com/tbourn/go-sports-backend/internal/services"
)

// membershipRepoShim adapts the repository free functions to the
// services.MembershipRepo interface expected by MembershipService.
type membershipRepoShim struct{}

func (membershipRepoShim) ListMemberships(ctx context.Context, db *gorm.DB) ([]domain.Membership, error) {
	return repo.ListMemberships(ctx, db)
}

func (membershipRepoShim) GetMembership(ctx context.Context, db *gorm.DB, id string) (*domain.Membership, error) {
	return repo.GetMembership(ctx, db, id)
}

func (membershipRepoShim) ListMembershipsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Membership, error) {
	return repo.ListMembershipsByUser(ctx, db, userID)
}

func (membershipRepoShim) ListMembershipsByGroup(ctx context.Context, db *gorm.DB, groupID string) ([]domain.Membership, error) {
	return repo.ListMembershipsByGroup(ctx, db, groupID)
}

func (membershipRepoShim) FindMembership(ctx context.Context, db *gorm.DB, userID, groupID string) (*domain.Membership, error) {
	return repo.FindMembership(ctx, db, userID, groupID)
}

func (membershipRepoShim) CreateMembership(ctx context.Context, db *gorm.DB, m *domain.Membership) error {
	return repo.CreateMembership(ctx, db, m)
}

func (membershipRepoShim) UpdateMembership(ctx context.Context, db *gorm.DB, id string, role *domain.Role, isCreator *bool) error {
	return repo.UpdateMembership(ctx, db, id, role, isCreator)
}

func (membershipRepoShim) DeleteMembership(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteMembership(ctx, db, id)
}

func (membershipRepoShim) GetGroup(ctx context.Context, db *gorm.DB, id string) (*domain.Group, error) {
	return repo.GetGroup(ctx, db, id)
}

// corsHeaders are the request headers browsers may send cross-origin.
var corsHeaders = []string{
	"Origin", "Content-Type", "Accept", "Authorization",
	middleware.HeaderUserID, middleware.HeaderIdempotencyKey,
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Identity: resolve the acting user from X-User-ID
//  4. Access logging (redacting unless LOG_REDACT=false)
//  5. Recovery: capture panics after logger
//  6. Body size limiter
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, separate write budget, bypass on replay)
//  10. CORS and Security headers
//  11. Optional gzip
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Identity())

	if cfg.LogRedact {
		r.Use(middleware.ContextLogger())
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{
			MaskHeaders: []string{middleware.HeaderUserID},
		}))
	} else {
		r.Use(middleware.Logger())
	}

	r.Use(middleware.Recovery())

	bodyLimit := cfg.BodyLimitBytes
	if bodyLimit <= 0 {
		bodyLimit = 1 << 20
	}
	r.Use(limitBody(bodyLimit))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen:     200,
			ScopeParam: "postId",
		},
		func(ctx context.Context, userID, postID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, postID, key, now)
			if errors.Is(err, repo.ErrNotFound) {
				return false, nil
			}
			return rec != nil, err
		},
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	if cfg.RateWriteBurst > 0 {
		rl.WithWriteLimits(middleware.Limits{RPS: cfg.RateWriteRPS, Burst: cfg.RateWriteBurst})
	}
	r.Use(rl.Handler())

	if len(cfg.CORS.AllowedOrigins) == 0 {
		// ACAO: * even without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "Idempotency-Replayed"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag", "Idempotency-Replayed"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:      cfg.Security.EnableHSTS,
		HSTSMaxAge:      cfg.Security.HSTSMaxAge,
		EnablePolicy:    true,
		PrivateForUsers: true,
		DocsPrefix:      "/swagger/",
	}))

	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db
	members := services.NewMembershipService(db, membershipRepoShim{})

	groups := services.NewGroupService(db, members)
	if cfg.GroupNameMaxRunes > 0 {
		groups.NameMaxRunes = cfg.GroupNameMaxRunes
	}

	joins := services.NewJoinRequestService(db, members)

	interactions := services.NewInteractionService(db)
	interactions.CommentMaxRunes = cfg.CommentMaxRunes
	if cfg.IdempotencyTTL > 0 {
		interactions.IdempotencyTTL = cfg.IdempotencyTTL
	}

	posts := &services.PostService{DB: db, ContentMaxRunes: cfg.PostMaxRunes}

	h := handlers.New(members, groups, joins, interactions, posts)
	mountAPI(groupWithPrefix(r, cfg.APIBasePath), h)
}

// mountAPI registers the public endpoints on g.
func mountAPI(g *gin.RouterGroup, h *handlers.Handlers) {
	// Memberships
	g.GET("/member", h.ListMemberships)
	g.GET("/member/:id", h.GetMembership)
	g.GET("/member/user/:id", h.ListUserMemberships)
	g.GET("/member/group/:id", h.ListGroupMemberships)
	g.POST("/member", h.CreateMembership)
	g.PATCH("/member/:id", h.UpdateMembership)
	g.DELETE("/member/:id", h.DeleteMembership)
	g.PATCH("/member/:id/role", h.ChangeMemberRole)

	// Groups
	g.POST("/groups", h.CreateGroup)
	g.GET("/groups/:id", h.GetGroup)
	g.PATCH("/groups/:id", h.UpdateGroup)
	g.DELETE("/groups/:id/members/me", h.LeaveGroup)

	// Join requests and invites
	g.POST("/join-requests", h.CreateJoinRequest)
	g.POST("/join-requests/:id/accept", h.AcceptJoinRequest)
	g.POST("/join-requests/:id/reject", h.RejectJoinRequest)
	g.DELETE("/join-requests/:id", h.CancelJoinRequest)
	g.GET("/join-requests/:id", h.GetJoinRequest)
	g.GET("/join-requests/user/me", h.ListMyJoinRequests)
	g.GET("/join-requests/group/:id", h.ListGroupJoinRequests)

	// Posts and interactions
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:postId", h.GetPost)
	g.POST("/posts/:postId/like", h.LikePost)
	g.DELETE("/posts/:postId/like", h.UnlikePost)
	g.POST("/posts/:postId/attendance", h.AttendPost)
	g.DELETE("/posts/:postId/attendance", h.UnattendPost)
	g.POST("/posts/:postId/comments", h.AddComment)
	g.GET("/posts/:postId/comments", h.ListComments)
	g.GET("/posts/:postId/counters", h.GetCounterDrift)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
