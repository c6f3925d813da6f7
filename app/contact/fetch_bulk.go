package contact

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/gin-gonic/gin"
)

func FetchBulk(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	contacts, err := d.Contacts.List(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}
