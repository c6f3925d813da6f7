// Package assessment stores questionnaire results such as PHQ9 or GAD7
package assessment

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

	var body service.AssessmentInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, validators.BindError(err))
		return
	}

	a, err := d.Assessments.Create(c.Request.Context(), userID, body)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}
