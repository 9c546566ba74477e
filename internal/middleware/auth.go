package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"attendance-service/internal/response"
)

const (
	// ContextAdminID holds the subject of the validated admin token
	ContextAdminID = "admin_id"

	roleAdmin = "admin"
)

// RequireAdmin validates an HS256 token from the Authorization header or the named cookie
// and rejects tokens whose role claim is not admin
func RequireAdmin(jwtSecret, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" && cookieName != "" {
			tokenString, _ = c.Cookie(cookieName)
		}
		if tokenString == "" {
			logger.Warn("auth.missing_token",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			logger.Warn("auth.invalid_token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid token claims")
			return
		}

		subject := subjectOf(claims)
		if role, _ := claims["role"].(string); role != roleAdmin {
			logger.Warn("auth.forbidden",
				zap.String("subject", subject),
				zap.String("role", role),
				zap.String("path", c.Request.URL.Path),
			)
			response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Admin role required")
			return
		}

		c.Set(ContextAdminID, subject)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// subjectOf accepts "sub", "user_id" and "uid" claim names
func subjectOf(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "user_id", "uid"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
