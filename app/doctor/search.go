// Package doctor serves the placeholder doctor directory
package doctor

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/util"
	"github.com/gin-gonic/gin"
)

func Search(c *gin.Context, d *internal.Deps) {
	lat, err := util.OptionalFloat(c, "lat")
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		apperr.Respond(c, apperr.Validation("lat", "Must be between -90 and 90"))
		return
	}

	lng, err := util.OptionalFloat(c, "lng")
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		apperr.Respond(c, apperr.Validation("lng", "Must be between -180 and 180"))
		return
	}

	c.JSON(http.StatusOK, d.Doctors.Search(c.Query("term"), lat, lng))
}
