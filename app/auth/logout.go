package auth

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/validators"
	"github.com/gin-gonic/gin"
)

func Logout(c *gin.Context, d *internal.Deps) {
	var body refreshBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, validators.BindError(err))
		return
	}

	if err := d.Auth.Logout(c.Request.Context(), body.RefreshToken); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
