// Package vital handles vital sign readings
package vital

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/service"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Create(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	var body service.VitalInput
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Respond(c, validators.BindError(err))
		return
	}

	r, err := d.Vitals.Create(c.Request.Context(), userID, body)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if r.IsEmergency {
		zap.L().Warn("Emergency vital reading recorded",
			zap.String("userID", userID),
			zap.String("vitalID", r.ID),
			zap.String("requestID", c.GetString("requestID")),
		)
	}

	c.JSON(http.StatusCreated, r)
}
