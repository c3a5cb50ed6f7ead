package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/domain/models"
	"github.com/mamadbah2/homy/internal/server/middleware"
)

var errInvalidBody = fmt.Errorf("%w: malformed JSON body", models.ErrValidation)

// statusFor maps a domain error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage strips the sentinel prefix and capitalizes the remainder,
// e.g. "invalid request: no item provided" becomes "No item provided".
func publicMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), models.ErrValidation.Error()+": ")
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

// respondError writes the {"error": message} body for err. Unknown errors
// are logged and reported with a generic message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", fields...)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	logger.Warn("request rejected", fields...)
	c.JSON(status, gin.H{"error": publicMessage(err)})
}

// respondInvalidBody reports a body that failed to decode. The decoder's
// message names Go types, so it is only logged.
func respondInvalidBody(c *gin.Context, logger *zap.Logger, err error) {
	logger.Debug("decode request body", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
	respondError(c, logger, errInvalidBody)
}
