package assessment

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/gin-gonic/gin"
)

func Fetch(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	a, err := d.Assessments.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}
