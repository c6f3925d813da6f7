package auth

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/validators"
	"github.com/gin-gonic/gin"
)

type refreshBody struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func Refresh(c *gin.Context, d *internal.Deps) {
	var body refreshBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, validators.BindError(err))
		return
	}

	pair, err := d.Auth.Refresh(c.Request.Context(), body.RefreshToken)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}
