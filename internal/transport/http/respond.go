package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/logger"
)

// respondError переводит типизированный исход движка в HTTP-статус.
// Validation и Conflict — 400, Forbidden — 403, NotFound — 404; всё
// остальное — 500 с общим сообщением, причина остаётся в логе.
func respondError(c *gin.Context, err error) {
	if kind, ok := booking.KindOf(err); ok {
		switch kind {
		case booking.KindValidation, booking.KindConflict:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case booking.KindForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case booking.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		}
		return
	}

	logger.L().Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
