package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	docs "github.com/moneyhealth/backend/api"
	"github.com/moneyhealth/backend/internal/controllers/healthz"
	"github.com/moneyhealth/backend/internal/controllers/root"
	v1 "github.com/moneyhealth/backend/internal/controllers/v1"
	"github.com/moneyhealth/backend/internal/controllers/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var Version = "0.0.0"

// Config sets up the engine with all middlewares and registers the
// Prometheus metrics. The returned teardown function unregisters them
// again and must be called before a new engine is configured.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("could not unregister prometheus metrics")
		}
	}

	if err := registerPrometheusMetrics(); err != nil {
		// Metrics that were registered before the failure are removed
		teardown()
		return nil, func() {}, err
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "This HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", Version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Money Health"
	docs.SwaggerInfo.Version = Version
	docs.SwaggerInfo.Description = "Scores the financial health of a personal ledger, month by month, and explains what to improve."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in
// Separating this from Config() allows us to attach it to different
// paths for different use cases, e.g. the standalone version.
func AttachRoutes(group *gin.RouterGroup) {
	root.RegisterRoutes(group)
	version.RegisterRoutes(group.Group("/version"), Version)
	healthz.RegisterRoutes(group.Group("/healthz"))

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	g := group.Group("/v1")
	v1.RegisterRootRoutes(g)
	v1.RegisterProfileRoutes(g.Group("/profiles"))
	v1.RegisterTransactionRoutes(g.Group("/transactions"))
	v1.RegisterDebtRoutes(g.Group("/debts"))
	v1.RegisterMatchRuleRoutes(g.Group("/match-rules"))
}
