package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumecraft/internal/accounts"
	"resumecraft/internal/resumes"
	"resumecraft/internal/services/health"
	"resumecraft/internal/shared/config"
	"resumecraft/internal/shared/metrics"
	"resumecraft/internal/shared/server/middleware"
	"resumecraft/internal/shared/server/respond"
)

const (
	apiPrefix  = "/api/v1"
	authPrefix = apiPrefix + "/auth/"
)

// RouterDeps holds the handlers mounted on the router.
type RouterDeps struct {
	Config   config.Config
	Accounts *accounts.Handler
	Resumes  *resumes.Handler
	Health   *health.Service
	Limiter  *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(authPrefix, apiPrefix+"/health", "/metrics"),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.Limiter,
			GroupFor: func(c *gin.Context) string {
				if strings.HasPrefix(c.Request.URL.Path, authPrefix) {
					return "AUTH"
				}
				return ""
			},
			Rules: map[string]middleware.RateLimitRule{
				"AUTH": {Rate: deps.Config.AuthRateLimitRPS, Burst: deps.Config.AuthRateLimitBurst},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Check(c.Request.Context())
		if !status.OK {
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		respond.OK(c, status)
	})
	if deps.Accounts != nil {
		deps.Accounts.RegisterRoutes(api)
		deps.Accounts.RegisterMeRoutes(api)
	}
	if deps.Resumes != nil {
		deps.Resumes.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
