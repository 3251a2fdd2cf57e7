package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/controller"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// requestLogger logs one line per request once the handler chain is done,
// tagged with the caller and the audit it touched when known.
func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event = event.
			Str("method", ctx.Request.Method).
			Str("route", ctx.FullPath()).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", ctx.ClientIP())

		if sess := controller.SessionFrom(ctx); sess.UserID != uuid.Nil {
			event = event.Str("user_id", sess.UserID.String()).Str("role", sess.Role)
		}
		if auditID := ctx.Param("audit_id"); auditID != "" {
			event = event.Str("audit_id", auditID)
		}
		if len(ctx.Errors) > 0 {
			event = event.Str("errors", ctx.Errors.String())
		}
		event.Msg("Request")
	}
}
