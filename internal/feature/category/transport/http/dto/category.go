// Package dto defines data transfer objects for the category feature's HTTP transport layer.
package dto

import (
	"time"

	"admin_backend/internal/feature/category/domain/entity"
	"admin_backend/internal/feature/category/usecase"
)

type CategoryRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *uint     `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromEntity converts a category entity to its response.
func FromEntity(c entity.Category) CategoryRes {
	return CategoryRes{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CategoryReq is the body of POST /categories and PUT /categories/:id.
type CategoryReq struct {
	Name     string `json:"name" binding:"required,max=55"`
	Slug     string `json:"slug" binding:"required,max=55"`
	ParentID *uint  `json:"parent_id" binding:"omitempty,min=1"`
}

func (r CategoryReq) Attributes() usecase.CategoryAttributes {
	return usecase.CategoryAttributes{Name: r.Name, Slug: r.Slug, ParentID: r.ParentID}
}
