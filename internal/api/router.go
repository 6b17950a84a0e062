package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/trapcount-dashboard-go/internal/config"
	"github.com/jengzang/trapcount-dashboard-go/internal/handler"
	"github.com/jengzang/trapcount-dashboard-go/internal/middleware"
	"github.com/jengzang/trapcount-dashboard-go/internal/service"
	"github.com/jengzang/trapcount-dashboard-go/internal/viz"
	"github.com/rs/zerolog"
)

// Deps are the components the router serves
type Deps struct {
	Series   *service.SeriesService
	Density  *service.DensityService
	Renderer *viz.Renderer
	Limiter  *middleware.RateLimiter // nil disables rate limiting
}

// NewLimiter returns a per-minute limiter for cfg, or nil when disabled
func NewLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimit <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps, log zerolog.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())
	if deps.Limiter != nil {
		r.Use(middleware.RateLimit(deps.Limiter))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Trap count dashboard is running",
		})
	})

	dashboardHandler := handler.NewDashboardHandler(cfg.Title, deps.Series, deps.Density, deps.Renderer)
	seriesHandler := handler.NewSeriesHandler(deps.Series)
	vizHandler := handler.NewVisualizationHandler(deps.Density)

	protected := r.Group("")
	if cfg.JWTSecret != "" {
		protected.Use(middleware.Auth([]byte(cfg.JWTSecret)))
	}

	// 仪表盘页面
	protected.GET("/", dashboardHandler.Index)

	// API 路由组
	api := protected.Group("/api/v1")
	{
		api.GET("/locations", dashboardHandler.GetLocations)
		api.GET("/weeks", dashboardHandler.GetWeeks)

		// 地点时间序列
		series := api.Group("/series")
		{
			series.GET("", seriesHandler.GetSeries)
			series.GET("/chart", seriesHandler.GetSeriesChart)
		}

		// 周热力图
		api.GET("/map", vizHandler.GetMap)

		frames := api.Group("/frames")
		{
			frames.GET("/:week", vizHandler.GetFrame)
			frames.GET("/:week/geojson", vizHandler.GetFrameGeoJSON)
		}
	}

	return r
}
