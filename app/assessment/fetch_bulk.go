package assessment

import (
	"net/http"
	"strings"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/util"
	"github.com/gin-gonic/gin"
)

func FetchBulk(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(string)

	page, size, err := util.Paging(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	typ := model.AssessmentType(strings.ToUpper(strings.TrimSpace(c.Query("type"))))

	res, err := d.Assessments.List(c.Request.Context(), userID, typ, page, size)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
