package contact

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/gin-gonic/gin"
)

func Alert(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)
	contactID := c.Param("id")

	if err := d.Contacts.SendAlert(c.Request.Context(), userID, contactID); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"contactId": contactID,
		"status":    "dispatched",
	})
}
