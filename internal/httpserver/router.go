package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopfront/internal/domain"
	"shopfront/internal/shop"
)

// Deps carries everything the routes need.
type Deps struct {
	Manager *shop.Manager
	Pinger  Pinger
}

// buildRouter wires routes for the storefront and the admin back-office.
func buildRouter(logger *logrus.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Manager == nil {
		return nil, errors.New("manager required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Pinger))

	m := deps.Manager

	router.GET("/products", listProductsHandler(m))
	router.GET("/products/featured", featuredProductsHandler(m))
	router.GET("/categories", categoriesHandler(m))

	auth := router.Group("/auth")
	{
		auth.POST("/login", loginHandler(m))
		auth.POST("/admin-login", adminLoginHandler(m))
		auth.POST("/register", registerHandler(m))
		auth.POST("/logout", logoutHandler(m))
	}
	router.GET("/me", currentUserHandler(m))

	cart := router.Group("/cart")
	{
		cart.GET("", cartHandler(m))
		cart.POST("/items", addCartItemHandler(m))
		cart.PATCH("/items/:productId", updateCartItemHandler(m))
		cart.DELETE("/items/:productId", removeCartItemHandler(m))
		cart.DELETE("", clearCartHandler(m))
	}

	router.POST("/checkout", checkoutHandler(m))
	router.GET("/orders", userOrdersHandler(m))
	router.POST("/orders/:id/cancel", cancelOrderHandler(m))

	admin := router.Group("/admin")
	{
		admin.GET("/stats", adminStatsHandler(m))
		admin.GET("/analytics", adminAnalyticsHandler(m))
		admin.GET("/users", adminUsersHandler(m))
		admin.GET("/orders", adminOrdersHandler(m))
		admin.POST("/products", addProductHandler(m))
		admin.PATCH("/products/:id", updateProductHandler(m))
		admin.DELETE("/products/:id", deleteProductHandler(m))
		admin.PATCH("/orders/:id/status", updateOrderStatusHandler(m))
		admin.POST("/users", createUserHandler(m))
		admin.DELETE("/users/:id", deleteUserHandler(m))
		admin.PATCH("/users/:id/role", updateUserRoleHandler(m))
	}

	return router, nil
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrMissingFields):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRemoteUnavailable):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
