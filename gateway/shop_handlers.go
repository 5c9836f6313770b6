package gateway

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type cartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (g *Gateway) getCart(c *gin.Context) {
	lines, err := g.services.Cart.List(c.Request.Context(), currentUser(c))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (g *Gateway) addToCart(c *gin.Context) {
	var req cartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if _, err := g.services.Cart.Add(c.Request.Context(), currentUser(c), req.ProductID, req.Quantity); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
}

func (g *Gateway) removeFromCart(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := g.services.Cart.Remove(c.Request.Context(), currentUser(c), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (g *Gateway) clearCart(c *gin.Context) {
	n, err := g.services.Cart.Clear(c.Request.Context(), currentUser(c))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "removed": n})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (g *Gateway) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := g.services.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (g *Gateway) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := g.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (g *Gateway) listOrders(c *gin.Context) {
	list, err := g.services.Orders.List(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (g *Gateway) sales(c *gin.Context) {
	s, err := g.services.Orders.Sales(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (g *Gateway) seed(c *gin.Context) {
	res, err := g.services.Seed(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	g.services.Catalog.Invalidate(c.Request.Context())

	g.logger.Info("Database seeded",
		zap.Int("categories", res.Categories),
		zap.Int("products", res.Products))
	c.JSON(http.StatusOK, gin.H{"message": "Database seeded"})
}

const defaultAuditLimit = 50

func (g *Gateway) auditLog(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)), 10, 64)
	if err != nil || limit < 1 {
		limit = defaultAuditLimit
	}

	logs, err := g.services.AuditLog.GetAuditLogs(c.Request.Context(), c.Param("entity"), c.Param("id"), limit)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
