package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/example/freshmart/pkg/auth"
	"github.com/example/freshmart/pkg/cart"
	"github.com/example/freshmart/pkg/catalog"
	"github.com/example/freshmart/pkg/config"
	"github.com/example/freshmart/pkg/orders"
	"github.com/example/freshmart/pkg/repository"
	"github.com/example/freshmart/pkg/seed"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/example/freshmart/docs"
)

// AuditLog looks up recorded admin changes for one entity.
type AuditLog interface {
	GetAuditLogs(ctx context.Context, entity, entityID string, limit int64) ([]*repository.AuditLog, error)
}

// Services are the domain services the HTTP layer routes to. AuditLog and
// Health may be nil.
type Services struct {
	Catalog  *catalog.Service
	Cart     *cart.Service
	Auth     *auth.Service
	Orders   *orders.Service
	Seed     func(ctx context.Context) (seed.Result, error)
	AuditLog AuditLog
	Health   func(ctx context.Context) error

	AdminGate auth.Verifier
	SeedGate  auth.Verifier
}

type Gateway struct {
	config   *config.Config
	services Services
	logger   *zap.Logger
	router   *gin.Engine
	server   *http.Server
}

func NewGateway(cfg *config.Config, logger *zap.Logger, services Services) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(logger))
	router.Use(cors.New(corsConfig(cfg.Server.AllowOrigins)))

	return &Gateway{
		config:   cfg,
		services: services,
		logger:   logger,
		router:   router,
		server: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", headerAdminSecret, headerSeedSecret},
		ExposeHeaders: []string{"Content-Length", headerRequestID},
		MaxAge:        12 * time.Hour,
	}
	all := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			all = true
		}
	}
	if all {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/health", g.health)

	admin := secretGate(g.services.AdminGate, headerAdminSecret, g.logger)
	user := bearerAuth(g.services.Auth)

	api := g.router.Group("/api")
	{
		api.GET("/products", g.listProducts)
		api.GET("/products/export", admin, g.exportProducts)
		api.GET("/products/:id", g.getProduct)
		api.POST("/products", admin, g.createProduct)
		api.PATCH("/products/:id", admin, g.updateProduct)
		api.DELETE("/products/:id", admin, g.deleteProduct)

		api.GET("/categories", g.listCategories)
		api.POST("/categories", admin, g.createCategory)
		api.PATCH("/categories/:id", admin, g.updateCategory)
		api.DELETE("/categories/:id", admin, g.deleteCategory)

		api.GET("/orders", admin, g.listOrders)
		api.GET("/sales", admin, g.sales)

		cartGroup := api.Group("/cart", user)
		{
			cartGroup.GET("", g.getCart)
			cartGroup.POST("", g.addToCart)
			cartGroup.DELETE("", g.clearCart)
			cartGroup.DELETE("/:id", g.removeFromCart)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", g.register)
			authGroup.POST("/login", g.login)
		}

		api.POST("/admin/seed", secretGate(g.services.SeedGate, headerSeedSecret, g.logger), g.seed)
		if g.services.AuditLog != nil {
			api.GET("/admin/audit/:entity/:id", admin, g.auditLog)
		}
	}

	// Swagger
	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Handler exposes the router, mainly for tests.
func (g *Gateway) Handler() http.Handler {
	return g.router
}

// Start serves until Shutdown is called, which is not reported as an error.
// After Shutdown it returns immediately.
func (g *Gateway) Start() error {
	g.logger.Info("Gateway starting", zap.String("address", g.server.Addr))
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	g.logger.Info("Gateway shutting down")
	return g.server.Shutdown(ctx)
}

func (g *Gateway) health(c *gin.Context) {
	if g.services.Health != nil {
		if err := g.services.Health(c.Request.Context()); err != nil {
			g.logger.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
