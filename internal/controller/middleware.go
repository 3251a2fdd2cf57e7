package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/storeaudit/internal/dto"
	"github.com/lshigami/storeaudit/internal/service"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	sessionKey = "session"
)

// SessionMiddleware builds the caller's session from the identity headers
// set by the authenticating gateway.
func SessionMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, err := uuid.Parse(strings.TrimSpace(ctx.GetHeader(HeaderUserID)))
		if err != nil || userID == uuid.Nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid " + HeaderUserID + " header"})
			return
		}

		role := strings.ToLower(strings.TrimSpace(ctx.GetHeader(HeaderUserRole)))
		switch role {
		case "":
			role = service.RoleAuditor
		case service.RoleAuditor, service.RoleManager, service.RoleAdmin:
		default:
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unknown role " + role})
			return
		}

		ctx.Set(sessionKey, service.Session{UserID: userID, Role: role})
		ctx.Next()
	}
}

// RequireRole rejects sessions whose role is not listed.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sess := SessionFrom(ctx)
		for _, r := range roles {
			if sess.Role == r {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "This action requires role " + strings.Join(roles, " or ")})
	}
}

// SessionFrom returns the session set by SessionMiddleware, or the zero
// session when the middleware did not run.
func SessionFrom(ctx *gin.Context) service.Session {
	if v, ok := ctx.Get(sessionKey); ok {
		if sess, ok := v.(service.Session); ok {
			return sess
		}
	}
	return service.Session{}
}

// ParseUUIDParam reads a uuid path parameter, writing a 400 when malformed.
func ParseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}
