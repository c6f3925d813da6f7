package doctor

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/gin-gonic/gin"
)

func Suggestions(c *gin.Context, d *internal.Deps) {
	c.JSON(http.StatusOK, d.Doctors.Suggestions())
}
