package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	pkgerrors "course-service/pkg/errors"
	"course-service/pkg/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError converts usecase errors to appropriate HTTP responses.
// Internal failures are logged and reported without their cause.
func writeError(c *gin.Context, log *zap.Logger, op string, err error) {
	status, code := pkgerrors.HTTPStatus(err)
	log = logger.WithContext(c.Request.Context(), log)

	if status == http.StatusInternalServerError {
		log.Error(op+" failed", zap.Error(err))
		_ = c.Error(err)
		c.JSON(status, ErrorResponse{
			Error:   code,
			Message: "An internal error occurred",
		})
		return
	}

	log.Info(op+" rejected", zap.Int("status", status), zap.Error(err))
	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

// parseID reads the :id path parameter. It writes a 400 response and returns false
// when the value is not a positive integer.
func parseID(c *gin.Context, log *zap.Logger) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		log.Warn("invalid id", zap.String("id", idStr))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "ID must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into v, writing a 400 response on malformed JSON.
func bindJSON(c *gin.Context, log *zap.Logger, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		log.Warn("invalid request body", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_body",
			Message: "Request body must be a valid JSON object",
		})
		return false
	}
	return true
}
