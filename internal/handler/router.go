package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/operator"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/api"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/middleware"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	Rental  *api.RentalHandler
	Payment *api.PaymentHandler
	Return  *api.ReturnHandler
	Order   *api.OrderHandler
	Catalog *api.CatalogHandler
	Device  *api.DeviceHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// The provider redirects the customer's browser here after payment;
	// it lives outside /api on purpose so the configured return URL is a
	// plain top-level path.
	engine.GET("/pay/return", h.Return.Return)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		// Kiosk-facing endpoints: the customer never authenticates, the
		// session cookie alone keys their pending selection.
		rental := apiGroup.Group("/rental")
		{
			addRoutes(rental, []route{
				{Method: http.MethodPost, Path: "/begin", Handler: h.Rental.Begin},
				{Method: http.MethodGet, Path: "/intent", Handler: h.Rental.GetIntent},
				{Method: http.MethodDelete, Path: "/intent", Handler: h.Rental.Abandon},
			})
		}

		payments := apiGroup.Group("/payments")
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/confirm-and-unlock", Handler: h.Payment.ConfirmAndUnlock},
			})

			paymentsAuth := payments.Group("")
			paymentsAuth.Use(authMiddleware.RequireAuth())
			addRoutes(paymentsAuth, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Payment.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Payment.Get},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Order.List},
				{Method: http.MethodGet, Path: "/active", Handler: h.Order.ListActive},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
				{Method: http.MethodPost, Path: "/:id/return", Handler: h.Order.MarkReturned,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(operator.RoleStaff)}},
				{Method: http.MethodPost, Path: "/:id/overdue", Handler: h.Order.MarkOverdue,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(operator.RoleStaff)}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Order.Cancel,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(operator.RoleStaff)}},
			})
		}

		packages := apiGroup.Group("/packages")
		{
			addRoutes(packages, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Catalog.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Catalog.Get},
			})
		}

		devices := apiGroup.Group("/devices")
		{
			addRoutes(devices, []route{
				{Method: http.MethodGet, Path: "/:deviceNo", Handler: h.Device.GetInfo},
				{Method: http.MethodGet, Path: "/:deviceNo/carts", Handler: h.Device.ListCarts},
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
