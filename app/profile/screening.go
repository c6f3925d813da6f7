package profile

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/service"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Screening(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	var body service.ScreeningInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, validators.BindError(err))
		return
	}

	out, err := d.Profiles.CompleteScreening(c.Request.Context(), userID, body)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if out.Result.Severity == service.SeverityUrgent {
		zap.L().Warn("Screening flagged urgent", zap.String("userID", userID), zap.String("requestID", c.GetString("requestID")))
	}

	c.JSON(http.StatusOK, out)
}
