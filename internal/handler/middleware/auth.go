package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/operator"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/cookie"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxOperatorIDKey   = "operator_id"
	ctxOperatorRoleKey = "operator_role"
)

var roleHierarchy = map[operator.Role]int{
	operator.RoleViewer: 1,
	operator.RoleStaff:  2,
	operator.RoleAdmin:  3,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		operatorID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxOperatorIDKey, operatorID)
		c.Set(ctxOperatorRoleKey, role)
		c.Next()
	}
}

func hasMinimumRole(operatorRole, minRole operator.Role) bool {
	operatorLevel, operatorExists := roleHierarchy[operatorRole]
	minLevel, minExists := roleHierarchy[minRole]
	return operatorExists && minExists && operatorLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole operator.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetOperatorRole(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetOperatorID(c *gin.Context) (uuid.UUID, bool) {
	operatorID, exists := c.Get(ctxOperatorIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := operatorID.(uuid.UUID)
	return id, ok
}

func GetOperatorRole(c *gin.Context) (operator.Role, bool) {
	operatorRole, exists := c.Get(ctxOperatorRoleKey)
	if !exists {
		return "", false
	}

	role, ok := operatorRole.(operator.Role)
	return role, ok
}
