package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewJWTMiddleware only lets requests through that carry a valid access
// token of an existing, enabled user in the Authorization header. On success
// userID and email are set on the context.
func NewJWTMiddleware(tokens *security.TokenService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		header := c.GetHeader("Authorization")
		scheme, tokenStr, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenStr) == "" {
			apperr.Respond(c, apperr.ErrInvalidToken.WithMessage("Missing bearer token"))
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(tokenStr))
		if err != nil {
			zap.L().Debug("Rejected token", zap.Error(err), zap.String("requestID", requestID))
			apperr.Respond(c, err)
			return
		}

		if claims.Type == security.TokenTypeRefresh {
			apperr.Respond(c, apperr.ErrInvalidToken.WithMessage("Refresh tokens can't be used for authorization"))
			return
		}

		var user model.User
		err = db.WithContext(c.Request.Context()).
			Select("id", "enabled").
			Where("id = ?", claims.Subject).
			First(&user).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.ErrInvalidToken.WithMessage("User no longer exists"))
				return
			}

			apperr.Respond(c, fmt.Errorf("failed to check if user exists, %w", err))
			return
		}

		if !user.Enabled {
			apperr.Respond(c, apperr.ErrAccountDisabled)
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("email", claims.Email)
		c.Next()
	}
}
