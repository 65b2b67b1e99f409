package httpserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// buildRouter wires routes for the storefront and admin console.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.Use(identifyUser(deps.AuthSvc))

	api.POST("/auth/register", registerHandler(deps.AuthSvc))
	api.POST("/auth/login", loginHandler(deps.AuthSvc))
	api.POST("/auth/logout", logoutHandler(deps.AuthSvc))

	api.GET("/products", listProductsHandler(deps.ProductSvc))
	api.GET("/products/:id", getProductHandler(deps.ProductSvc))

	api.GET("/cart", getCartHandler(deps.CartSvc))
	api.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	api.PATCH("/cart/items/:productId", setCartQuantityHandler(deps.CartSvc))
	api.DELETE("/cart/items/:productId", removeCartItemHandler(deps.CartSvc))
	api.DELETE("/cart", clearCartHandler(deps.CartSvc))

	authed := api.Group("")
	authed.Use(requireUser())
	authed.POST("/orders", placeOrderHandler(deps.OrderSvc, deps.CartSvc))
	authed.GET("/orders", listMyOrdersHandler(deps.OrderSvc))

	admin := api.Group("/admin")
	admin.Use(requireUser(), requireAdmin())
	admin.GET("/products", listProductsHandler(deps.ProductSvc))
	admin.POST("/products", createProductHandler(deps.ProductSvc))
	admin.PUT("/products/:id", updateProductHandler(deps.ProductSvc))
	admin.DELETE("/products/:id", deleteProductHandler(deps.ProductSvc))
	admin.GET("/orders", listAllOrdersHandler(deps.OrderSvc))
	admin.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.OrderSvc))
	admin.PATCH("/orders/:id/files", updateOrderFilesHandler(deps.OrderSvc))
	admin.DELETE("/orders/:id", deleteOrderHandler(deps.OrderSvc))
	admin.GET("/users", listUsersHandler(deps.UserRepo))
	admin.PATCH("/users/:id/role", updateUserRoleHandler(deps.UserRepo))
	admin.DELETE("/users/:id", deleteUserHandler(deps.UserRepo))
	admin.GET("/sales/daily", dailySalesHandler(deps.OrderSvc))
	admin.GET("/sales/monthly", monthlySalesHandler(deps.OrderSvc))

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
