package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/example/freshmart/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerRequestID   = "X-Request-ID"
	headerAdminSecret = "X-ADMIN-SECRET"
	headerSeedSecret  = "X-SEED-SECRET"

	ctxRequestID = "request_id"
	ctxUserID    = "user_id"
)

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		// The query string is left out; it may carry the admin secret.
		logger.Info("HTTP request",
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// secretGate admits requests presenting a secret accepted by v, either as
// the secret query parameter or in header.
func secretGate(v auth.Verifier, header string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.Query("secret")
		if presented == "" {
			presented = c.GetHeader(header)
		}
		if v == nil || !v.Verify(presented) {
			logger.Warn("Rejected shared secret",
				zap.String("request_id", c.GetString(ctxRequestID)),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// bearerAuth resolves "Authorization: Bearer <token>" to a user id.
func bearerAuth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization Header"})
			return
		}

		userID, err := svc.Authenticate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}
