package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
	"shopfront/internal/shop"
)

func adminStatsHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := m.AdminStats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func adminAnalyticsHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := m.Analytics(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

func adminUsersHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := m.CurrentUser()
		if current == nil || !current.IsAdmin() {
			respondError(c, domain.ErrForbidden)
			return
		}
		c.JSON(http.StatusOK, toUserResponses(m.Users()))
	}
}

func adminOrdersHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := m.CurrentUser()
		if current == nil || !current.IsAdmin() {
			respondError(c, domain.ErrForbidden)
			return
		}
		c.JSON(http.StatusOK, m.Orders())
	}
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"priceCents"`
	Stock       int    `json:"stock"`
	Image       string `json:"image"`
}

func (r productRequest) toDomain() domain.Product {
	return domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		PriceCents:  r.PriceCents,
		Stock:       r.Stock,
		Image:       r.Image,
	}
}

func addProductHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
			return
		}
		created, err := m.AddProduct(c.Request.Context(), req.toDomain())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateProductHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
			return
		}
		updated, err := m.UpdateProduct(c.Request.Context(), c.Param("id"), req.toDomain())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteProductHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func updateOrderStatusHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
			return
		}
		updated, err := m.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func createUserHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shop.CreateUserInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user payload"})
			return
		}
		created, err := m.CreateUser(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toUserResponse(*created))
	}
}

func deleteUserHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

func updateUserRoleHandler(m *shop.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req roleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role required"})
			return
		}
		updated, err := m.UpdateUserRole(c.Request.Context(), c.Param("id"), req.Role)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(*updated))
	}
}
