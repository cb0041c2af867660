// Package request holds binding helpers shared by the HTTP handlers.
package request

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"admin_backend/internal/platform/store"
)

// PageQuery is the query string of a paginated listing.
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// PageRequest converts q to a store.PageRequest.
func (q PageQuery) PageRequest() store.PageRequest {
	return store.PageRequest{Page: q.Page, Limit: q.Limit}
}

// ParseID reads the :id path parameter. ok is false for anything but a positive integer.
func ParseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
