// Package profile serves the signed in user's own profile
package profile

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/gin-gonic/gin"
)

func Fetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	p, err := d.Profiles.Get(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
