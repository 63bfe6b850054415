package handler

import (
	"net/http"

	"hotel-booking-core/internal/handler/api"
	"hotel-booking-core/internal/handler/middleware"
	"hotel-booking-core/internal/infra/metrics"
	"hotel-booking-core/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking  *api.BookingHandler
	Refund   *api.RefundHandler
	Checkout *api.CheckoutHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, recorder *metrics.Recorder, gatherer prometheus.Gatherer) {
	setupMiddleware(engine, cfg, recorder)
	setupRoutes(engine, h, authMiddleware, gatherer)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, recorder *metrics.Recorder) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(recorder.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, gatherer prometheus.Gatherer) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/checkout", Handler: h.Checkout.Checkout, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Booking.UpdateStatus},
				{Method: http.MethodPut, Path: "/:id/room-number", Handler: h.Booking.AssignRoomNumber},
				{Method: http.MethodPost, Path: "/:id/refund-requests", Handler: h.Refund.Create},
			})
		}

		refunds := apiGroup.Group("/refund-requests")
		refunds.Use(authMiddleware.RequireAuth())
		{
			addRoutes(refunds, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Refund.List},
				{Method: http.MethodGet, Path: "/unconfirmed", Handler: h.Refund.ListUnconfirmed},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Refund.Get},
				{Method: http.MethodPost, Path: "/:id/resolution", Handler: h.Refund.Resolve},
				{Method: http.MethodPost, Path: "/:id/process", Handler: h.Refund.Process},
				{Method: http.MethodPost, Path: "/:id/reconcile", Handler: h.Refund.Reconcile},
			})
		}
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
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
