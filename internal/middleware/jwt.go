package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aegis-safety/backend/internal/constants"
	"github.com/aegis-safety/backend/internal/model"
	"github.com/aegis-safety/backend/internal/service"
	ctxutil "github.com/aegis-safety/backend/pkg/context"
	"github.com/aegis-safety/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountLoader is the slice of the repository the auth middleware
// needs.
type AccountLoader interface {
	GetByID(ctx context.Context, id uint) (*model.Account, error)
}

type JWTMiddleware struct {
	issuer   *service.TokenIssuer
	accounts AccountLoader
}

func NewJWTMiddleware(issuer *service.TokenIssuer, accounts AccountLoader) *JWTMiddleware {
	return &JWTMiddleware{
		issuer:   issuer,
		accounts: accounts,
	}
}

// RequireAuth validates the bearer token and loads the account. A
// token issued before the account's last password change is rejected,
// as is a token for a deactivated account.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			logger.GetLogger().Warn("Missing or malformed Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			unauthorized(c)
			return
		}

		claims, err := m.issuer.Verify(tokenString)
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired session token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			unauthorized(c)
			return
		}

		account, err := m.accounts.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			logger.GetLogger().Warn("Account for session token not found",
				zap.Uint("account_id", claims.AccountID),
				zap.Error(err))
			unauthorized(c)
			return
		}

		// Sessions predating a password change are dead.
		if account.PasswordChangedAt != nil && claims.IssuedAt.Before(*account.PasswordChangedAt) {
			logger.GetLogger().Warn("Session token predates password change",
				zap.Uint("account_id", account.ID),
				zap.Time("issued_at", claims.IssuedAt),
				zap.Time("password_changed_at", *account.PasswordChangedAt))
			unauthorized(c)
			return
		}

		if !account.IsActive {
			logger.GetLogger().Warn("Session rejected: account deactivated",
				zap.Uint("account_id", account.ID))
			c.JSON(http.StatusForbidden, constants.BuildErrorResponse("Account is deactivated", nil))
			c.Abort()
			return
		}

		c.Set(constants.GinKeyAccountID, account.ID)
		c.Set(constants.GinKeyEmail, account.Email)
		c.Set(constants.GinKeyRole, account.Role)

		// Propagate identity into the request context for the loggers.
		c.Request = c.Request.WithContext(ctxutil.WithAccountID(c.Request.Context(), account.ID))

		c.Next()
	}
}

// RequireRole guards a route group behind one of the given roles. Must
// run after RequireAuth.
func (m *JWTMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(constants.GinKeyRole)
		role, _ := value.(string)
		if !exists || role == "" {
			unauthorized(c)
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		logger.GetLogger().Warn("Role not permitted for route",
			zap.String("role", role),
			zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusForbidden, constants.BuildErrorResponse("Insufficient permissions", nil))
		c.Abort()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != constants.BearerScheme || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
	c.Abort()
}
