// Package util holds small request helpers shared by handlers
package util

import (
	"strconv"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 250
)

// Paging reads the page and size query parameters. Pages start at 0.
func Paging(c *gin.Context) (page, size int, err error) {
	page, err = strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		return 0, 0, apperr.Validation("page", "Page must be a number")
	}

	if page < 0 {
		return 0, 0, apperr.Validation("page", "Page can't be negative")
	}

	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil {
		return 0, 0, apperr.Validation("size", "Size must be a number")
	}

	if size <= 0 {
		return 0, 0, apperr.Validation("size", "Size must be greater than 0")
	}

	if size > MaxPageSize {
		return 0, 0, apperr.Validation("size", "Size must be smaller than 250")
	}

	return page, size, nil
}

// OptionalFloat parses a query parameter that may be absent
func OptionalFloat(c *gin.Context, key string) (*float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.Validation(key, "Must be a number")
	}

	return &f, nil
}
