package contact

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/gin-gonic/gin"
)

func Delete(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	if err := d.Contacts.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
