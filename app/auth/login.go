package auth

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/service"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Login(c *gin.Context, d *internal.Deps) {
	var body service.LoginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, validators.BindError(err))
		return
	}

	res, err := d.Auth.Login(c.Request.Context(), body)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	zap.L().Debug("User logged in", zap.String("userID", res.UserID), zap.String("requestID", c.GetString("requestID")))
	c.JSON(http.StatusOK, res)
}
