package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validate is only reached when the JWT middleware accepted the token
func Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userId": c.GetString("userID"),
		"email":  c.GetString("email"),
	})
}
