package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"promo-engine/internal/handler/api"
	"promo-engine/internal/handler/middleware"
	"promo-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	evaluateHandler *api.EvaluateHandler,
	couponHandler *api.CouponHandler,
	campaignHandler *api.CampaignHandler,
	auditHandler *api.AuditHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, evaluateHandler, couponHandler, campaignHandler, auditHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	evaluateHandler *api.EvaluateHandler,
	couponHandler *api.CouponHandler,
	campaignHandler *api.CampaignHandler,
	auditHandler *api.AuditHandler,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	campaigns := engine.Group("/campaigns")
	{
		addRoutes(campaigns, []route{
			{Method: http.MethodPost, Path: "", Handler: campaignHandler.Upsert},
			{Method: http.MethodPost, Path: "/evaluate", Handler: evaluateHandler.Evaluate},
			{Method: http.MethodPost, Path: "/:id/expire", Handler: campaignHandler.Expire},
			{Method: http.MethodGet, Path: "/audit", Handler: auditHandler.Query},
		})
	}

	coupons := engine.Group("/coupons")
	{
		addRoutes(coupons, []route{
			{Method: http.MethodPost, Path: "/:code/reserve", Handler: couponHandler.Reserve},
			{Method: http.MethodPost, Path: "/reservations/:id/confirm", Handler: couponHandler.Confirm},
			{Method: http.MethodPost, Path: "/reservations/:id/release", Handler: couponHandler.Release},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
