package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
	"shopfront/internal/shop"
)

func listProductsHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		products := m.FilteredProducts(category)
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func featuredProductsHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m.FeaturedProducts())
	}
}

func categoriesHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m.Categories())
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		id, err := m.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id})
	}
}

func adminLoginHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		id, err := m.AdminLogin(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id})
	}
}

func registerHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shop.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
			return
		}
		id, err := m.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": id})
	}
}

func logoutHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.Logout(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
}

func currentUserHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := m.CurrentUser()
		if id == nil {
			respondError(c, domain.ErrNotAuthenticated)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id})
	}
}

func cartHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := m.CartItems()
		if items == nil {
			items = []domain.CartItem{}
		}
		c.JSON(http.StatusOK, cartResponse{
			Items:      items,
			TotalCents: m.CartTotal(),
			ItemCount:  m.CartItemCount(),
		})
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func addCartItemHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		product, ok := m.ProductByID(req.ProductID)
		if !ok {
			respondError(c, domain.ErrNotFound)
			return
		}
		m.AddToCart(c.Request.Context(), *product)
		c.Status(http.StatusNoContent)
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		m.UpdateQuantity(c.Request.Context(), c.Param("productId"), req.Quantity)
		c.Status(http.StatusNoContent)
	}
}

func removeCartItemHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.RemoveFromCart(c.Request.Context(), c.Param("productId"))
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.ClearCart()
		c.Status(http.StatusNoContent)
	}
}

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

func checkoutHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout payload"})
			return
		}
		order, err := m.PlaceOrder(c.Request.Context(), req.ShippingAddress, req.PaymentMethod)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"orderId":     order.ID,
			"orderNumber": order.OrderNumber,
			"totalCents":  order.TotalCents,
		})
	}
}

func userOrdersHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, m.UserOrders(c.Request.Context()))
	}
}

func cancelOrderHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := m.CancelOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
