package gateway

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/example/freshmart/pkg/auth"
	"github.com/example/freshmart/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes {"error": msg}. Only domain errors have their message
// echoed; anything else is logged and reported as a 500.
func (g *Gateway) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrInvalidInput), errors.Is(err, repository.ErrDuplicate):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		g.logger.Error("Request failed",
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// idParam parses the :id path segment. Anything but a positive integer is
// a 404, as no such resource can exist.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}
