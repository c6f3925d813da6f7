// Package contact manages a user's emergency contacts
package contact

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/service"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/validators"
	"github.com/gin-gonic/gin"
)

func Create(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	var body service.ContactInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, validators.BindError(err))
		return
	}

	contact, err := d.Contacts.Create(c.Request.Context(), userID, body)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}
