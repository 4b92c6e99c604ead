package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"

	"github.com/Arylite/nephtys/config"
	"github.com/Arylite/nephtys/controllers"
	"github.com/Arylite/nephtys/middleware"
	"github.com/Arylite/nephtys/utils"
)

// Dependencies are the collaborators the HTTP layer is wired to.
type Dependencies struct {
	Webtoons  *controllers.WebtoonController
	Analytics *controllers.AnalyticsController
	Search    *controllers.SearchController
	Stats     *controllers.StatsController
	Config    *controllers.ConfigController
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, deps Dependencies) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access and panic logs go to their own rolling file
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(ginzap.Ginzap(gl, time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(gl, false))
	} else {
		utils.Sugar.Warnf("gin log file unavailable, falling back to default recovery: %v", err)
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", controllers.HeaderTotalCount, controllers.HeaderTotalPages, controllers.HeaderCurrentPage},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")
	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	adminOnly := middleware.AdminRequired(cfg.AuthJWTSecret)
	writeLimit := middleware.NewRateLimiter(cfg.RateLimitPerMinute).Middleware()

	api := r.Group("/api")

	webtoons := api.Group("/webtoon")
	webtoons.GET("", deps.Webtoons.ListWebtoons)
	webtoons.POST("", writeLimit, adminOnly, deps.Webtoons.CreateWebtoon)
	webtoons.GET("/:id", deps.Webtoons.GetWebtoon)
	webtoons.GET("/:id/views", deps.Analytics.GetViews)
	webtoons.POST("/:id/views", writeLimit, deps.Analytics.AddView)

	api.GET("/search", deps.Search.Search)
	api.GET("/stats", deps.Stats.GetStats)
	api.GET("/config/search", deps.Config.GetSearchConfig)

	admin := api.Group("/admin")
	admin.Use(writeLimit, adminOnly)
	admin.POST("/search/reindex", deps.Search.Reindex)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") {
			utils.Error(ctx, http.StatusNotFound, 40401, "static asset not found")
			return
		}
		// everything else is a client side route of the SPA
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
