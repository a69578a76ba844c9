package middleware

import (
	"errors"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer token payload. Tokens are issued elsewhere; this
// service only verifies them.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies an HS256 bearer token and stores the subject and
// role on the context.
func AuthMiddleware(secret string, audit *security.AuditLogger) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		var tokenString string

		// 1. Try to get token from Header
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		} else if cookie, err := c.Cookie("auth_token"); err == nil {
			// 2. Try to get token from Cookie
			tokenString = cookie
		}

		if tokenString == "" {
			abort(c, apperror.Unauthorized("Authorization header or auth_token cookie required"))
			return
		}
		if len(key) == 0 {
			logger.Log.Error("JWT_SECRET is not configured; rejecting bearer token")
			abort(c, apperror.Unauthorized("Invalid token"))
			return
		}

		claims := &Claims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			logger.Log.Debug("token validation failed", "error", err)
			message := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Token expired"
			}
			abort(c, apperror.Unauthorized(message))
			return
		}

		if claims.Subject == "" || (claims.Role != domain.RoleCandidate && claims.Role != domain.RoleRecruiter) {
			audit.Log(c.Request.Context(), security.AuditEvent{
				Event:     security.EventUnauthorizedAccess,
				ActorID:   claims.Subject,
				IP:        c.ClientIP(),
				RequestID: c.GetString("RequestID"),
				Details:   map[string]any{"role": claims.Role, "path": c.FullPath()},
			})
			abort(c, apperror.Unauthorized("Invalid claims"))
			return
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserRole), claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose token role is not the given one.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserRole)) != role {
			abort(c, apperror.Forbidden("This action requires the "+role+" role"))
			return
		}
		c.Next()
	}
}

// abort hands the error to ErrorHandler and stops the chain.
func abort(c *gin.Context, err *apperror.AppError) {
	_ = c.Error(err)
	c.Abort()
}
