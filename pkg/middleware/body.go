package middleware

import (
	"net/http"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/gin-gonic/gin"
)

// BodySizeLimiter rejects requests that announce a body above maxBytes and
// caps the reader for the ones that don't announce one. Handlers surface the
// overflow as a bind error.
func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			apperr.Respond(c, apperr.ErrBodyTooLarge)
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
