// Package auth holds the session endpoints: register, login, refresh and logout
package auth

import (
	"net/http"
	"strings"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/service"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Register(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var body service.RegisterInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, validators.BindError(err))
		return
	}

	if err := validators.EmailValidator(body.Email); err != nil {
		zap.L().Debug("Invalid email", zap.Error(err), zap.String("requestID", requestID))
		apperr.Respond(c, apperr.Validation("email", err.Error()))
		return
	}

	if err := validators.PasswordValidator(body.Password); err != nil {
		zap.L().Debug("Invalid password", zap.Error(err), zap.String("requestID", requestID))
		apperr.Respond(c, apperr.Validation("password", err.Error()))
		return
	}

	body.FullName = strings.TrimSpace(body.FullName)
	if body.FullName == "" {
		apperr.Respond(c, apperr.Validation("fullName", "This field is required"))
		return
	}

	res, err := d.Auth.Register(c.Request.Context(), body)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	zap.L().Info("User registered", zap.String("userID", res.UserID), zap.String("requestID", requestID))
	c.JSON(http.StatusCreated, res)
}
