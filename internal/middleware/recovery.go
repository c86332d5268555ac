package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/handler"
)

// brokenPipe reports whether the client went away mid-response.
func brokenPipe(v interface{}) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if errors.As(opErr.Err, &sysErr) {
		return errors.Is(sysErr.Err, syscall.EPIPE) || errors.Is(sysErr.Err, syscall.ECONNRESET)
	}
	return false
}

// Recovery turns panics into a 500 envelope. The panic is logged with the
// request-scoped logger so it carries the request id.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			logger := zerolog.Ctx(c.Request.Context())
			if logger.GetLevel() == zerolog.Disabled {
				logger = &log.Logger
			}
			if brokenPipe(rec) {
				logger.Warn().Interface("error", rec).Str("path", c.Request.URL.Path).Msg("client connection lost")
				c.Abort()
				return
			}

			logger.Error().
				Interface("error", rec).
				Bytes("stack", debug.Stack()).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(ContextRequestID)).
				Msg("request panic recovered")

			c.AbortWithStatusJSON(http.StatusInternalServerError, handler.NewErrorResponse("Internal server error"))
		}()
		c.Next()
	}
}
