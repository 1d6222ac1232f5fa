package router

import (
	"github.com/farmstock/backend/internal/infrastructure/auth"
	"github.com/farmstock/backend/internal/infrastructure/config"
	"github.com/farmstock/backend/internal/infrastructure/logger"
	"github.com/farmstock/backend/internal/interfaces/http/handler"
	"github.com/farmstock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth             *handler.AuthHandler
	User             *handler.UserHandler
	StockRequest     *handler.StockRequestHandler
	StockItem        *handler.StockItemHandler
	Category         *handler.CategoryHandler
	Store            *handler.StoreHandler
	Site             *handler.SiteHandler
	Client           *handler.ClientHandler
	MedicationRecord *handler.MedicationRecordHandler
	Outbox           *handler.OutboxHandler
	System           *handler.SystemHandler
}

// Config carries the router dependencies
type Config struct {
	AppConfig      *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Handlers       Handlers
	// WebSocketHandler serves GET /ws when set
	WebSocketHandler gin.HandlerFunc
	// ExtraMiddleware is appended after the built-in chain (tracing etc.)
	ExtraMiddleware []gin.HandlerFunc
}

// New builds the gin engine with the full middleware chain and route table
func New(cfg Config) *gin.Engine {
	if cfg.AppConfig != nil && cfg.AppConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.AppConfig != nil && len(cfg.AppConfig.HTTP.TrustedProxies) > 0 {
		_ = r.SetTrustedProxies(cfg.AppConfig.HTTP.TrustedProxies)
	}

	corsConfig := middleware.DefaultCORSConfig()
	if cfg.AppConfig != nil && len(cfg.AppConfig.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AppConfig.HTTP.CORSAllowOrigins
	}

	r.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORSWithConfig(corsConfig),
		middleware.Secure(middleware.DefaultSecurityConfig()),
	)
	r.Use(cfg.ExtraMiddleware...)

	r.GET("/health", cfg.Handlers.System.Health)

	// The websocket endpoint authenticates inside the upgrade handshake
	// (browsers cannot set an Authorization header on a ws connection)
	if cfg.WebSocketHandler != nil {
		r.GET("/ws", cfg.WebSocketHandler)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		Logger:         cfg.Logger,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}))

	registerAuthRoutes(api, cfg.Handlers.Auth)
	registerUserRoutes(api, cfg.Handlers.User)
	registerStockRequestRoutes(api, cfg.Handlers.StockRequest)
	registerStockRoutes(api, cfg.Handlers.StockItem, cfg.Handlers.Category)
	registerMasterDataRoutes(api, cfg.Handlers.Store, cfg.Handlers.Site, cfg.Handlers.Client)
	registerMedicationRoutes(api, cfg.Handlers.MedicationRecord)
	registerOutboxRoutes(api, cfg.Handlers.Outbox)

	return r
}

func registerAuthRoutes(api *gin.RouterGroup, h *handler.AuthHandler) {
	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Login)
	authGroup.POST("/refresh", h.Refresh)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", h.Me)
	authGroup.POST("/change-password", h.ChangePassword)
}

func registerUserRoutes(api *gin.RouterGroup, h *handler.UserHandler) {
	users := api.Group("/users", middleware.RequireAdmin())
	users.POST("", h.Create)
	users.GET("", h.List)
	users.GET("/:id", h.Get)
	users.PATCH("/:id", h.Update)
	users.PATCH("/:id/activate", h.Activate)
	users.PATCH("/:id/deactivate", h.Deactivate)
}

func registerStockRequestRoutes(api *gin.RouterGroup, h *handler.StockRequestHandler) {
	requests := api.Group("/stock-requests")
	requests.POST("", h.Create)
	requests.GET("", h.List)
	requests.GET("/:id", h.Get)
	requests.GET("/by-number/:number", h.GetByNumber)
	requests.PATCH("/:id/approve", middleware.RequireAdmin(), h.Approve)
	requests.PATCH("/:id/modify-approve", middleware.RequireAdmin(), h.Approve)
	requests.PATCH("/:id/reject", middleware.RequireAdmin(), h.Reject)
	requests.PATCH("/:id/close", middleware.RequireAdmin(), h.Close)
	requests.POST("/issue-materials", middleware.RequireAdmin(), h.IssueMaterials)
	requests.POST("/receive-materials", h.ReceiveMaterials)
	requests.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
}

func registerStockRoutes(api *gin.RouterGroup, items *handler.StockItemHandler, categories *handler.CategoryHandler) {
	stock := api.Group("/stock")

	itemGroup := stock.Group("/items")
	itemGroup.POST("", items.Create)
	itemGroup.GET("", items.List)
	itemGroup.GET("/low-stock", items.LowStock)
	itemGroup.GET("/:id", items.Get)
	itemGroup.PATCH("/:id", items.Update)
	itemGroup.POST("/:id/restock", items.Restock)
	itemGroup.DELETE("/:id", middleware.RequireAdmin(), items.Delete)

	categoryGroup := stock.Group("/categories")
	categoryGroup.POST("", categories.Create)
	categoryGroup.GET("", categories.List)
	categoryGroup.GET("/:id", categories.Get)
	categoryGroup.PATCH("/:id", categories.Update)
	categoryGroup.DELETE("/:id", middleware.RequireAdmin(), categories.Delete)
}

func registerMasterDataRoutes(api *gin.RouterGroup, stores *handler.StoreHandler, sites *handler.SiteHandler, clients *handler.ClientHandler) {
	storeGroup := api.Group("/stores")
	storeGroup.POST("", stores.Create)
	storeGroup.GET("", stores.List)
	storeGroup.GET("/:id", stores.Get)
	storeGroup.PATCH("/:id", stores.Update)
	storeGroup.DELETE("/:id", middleware.RequireAdmin(), stores.Delete)

	siteGroup := api.Group("/sites")
	siteGroup.POST("", sites.Create)
	siteGroup.GET("", sites.List)
	siteGroup.GET("/:id", sites.Get)
	siteGroup.PATCH("/:id", sites.Update)
	siteGroup.DELETE("/:id", middleware.RequireAdmin(), sites.Delete)

	clientGroup := api.Group("/clients")
	clientGroup.POST("", clients.Create)
	clientGroup.GET("", clients.List)
	clientGroup.GET("/:id", clients.Get)
	clientGroup.PATCH("/:id", clients.Update)
	clientGroup.DELETE("/:id", middleware.RequireAdmin(), clients.Delete)
}

func registerMedicationRoutes(api *gin.RouterGroup, h *handler.MedicationRecordHandler) {
	records := api.Group("/medication-records")
	records.POST("", h.Create)
	records.GET("", h.List)
	records.GET("/:id", h.Get)
	records.PATCH("/:id", h.Update)
	records.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
}

func registerOutboxRoutes(api *gin.RouterGroup, h *handler.OutboxHandler) {
	outbox := api.Group("/outbox", middleware.RequireAdmin())
	outbox.GET("/stats", h.Stats)
	outbox.GET("/entries/:id", h.Get)
	outbox.GET("/dead-letters", h.ListDeadLetters)
	outbox.POST("/dead-letters/retry-all", h.RetryAllDeadLetters)
	outbox.POST("/dead-letters/:id/retry", h.RetryDeadLetter)
}
