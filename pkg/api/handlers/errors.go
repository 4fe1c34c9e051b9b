package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/umaai/pkg/api/types"
	"github.com/urmzd/umaai/pkg/device"
)

// DefaultMaxBody limits buffered upload and audio bodies.
const DefaultMaxBody int64 = 10 << 20

// maxJSONBody limits small JSON request bodies.
const maxJSONBody int64 = 64 << 10

func abort(c *gin.Context, status int, code, message string) {
	c.JSON(status, types.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// deviceError maps a device controller failure to its HTTP response.
func deviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, device.ErrNotFound):
		abort(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, device.ErrUnsupported):
		abort(c, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, device.ErrNotConnected):
		abort(c, http.StatusServiceUnavailable, "controller_disconnected", err.Error())
	case errors.Is(err, device.ErrTimeout):
		abort(c, http.StatusGatewayTimeout, "timeout", "Request timed out waiting for controller response")
	default:
		abort(c, http.StatusInternalServerError, "controller_error", err.Error())
	}
}

// bodyError reports a failed body read. Oversized bodies get 413.
func bodyError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		abort(c, http.StatusRequestEntityTooLarge, "body_too_large", err.Error())
		return
	}
	abort(c, http.StatusBadRequest, "invalid_body", err.Error())
}

// clientID identifies the terminal behind a request: the first
// X-Forwarded-For entry when present, the peer address otherwise.
func clientID(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := c.RemoteIP(); ip != "" {
		return ip
	}
	return "unknown"
}
