package vital

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
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

	res, err := d.Vitals.List(c.Request.Context(), userID, page, size)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
