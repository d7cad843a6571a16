package model

import (
	"github.com/deppfellow/storefront/internal/errs"
)

type Category struct {
	Base
	Name        string  `db:"name" json:"name"`
	Slug        string  `db:"slug" json:"slug"`
	Description string  `db:"description" json:"description"`
	Icon        *string `db:"icon" json:"icon"`
}

// ListCategoriesRequest filters GET /categories.
type ListCategoriesRequest struct {
	Search string `query:"search"`
}

func (r *ListCategoriesRequest) Validate() error {
	r.Search = trim(r.Search)
	return nil
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Icon        *string `json:"icon"`
}

// Validate trims every string field and reports blank required fields.
func (r *CreateCategoryRequest) Validate() error {
	r.Name = trim(r.Name)
	r.Slug = trim(r.Slug)
	r.Description = trim(r.Description)
	r.Icon = trimPtr(r.Icon)

	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Slug == "" {
		missing = append(missing, "slug")
	}
	if len(missing) > 0 {
		return errs.MissingFieldsError(missing...)
	}

	return nil
}

// UpdateCategoryRequest is a sparse update; only keys present in the body
// are written. Icon may be cleared with an explicit null.
type UpdateCategoryRequest struct {
	ID          int64         `json:"id" validate:"required,min=1"`
	Name        *string       `json:"name"`
	Slug        *string       `json:"slug"`
	Description *string       `json:"description"`
	Icon        Field[string] `json:"icon"`
}

func (r *UpdateCategoryRequest) Validate() error {
	r.Name = trimPtr(r.Name)
	r.Slug = trimPtr(r.Slug)
	r.Description = trimPtr(r.Description)

	if err := validate.Struct(r); err != nil {
		return err
	}

	return blankFields([]string{"name", "slug"}, r.Name, r.Slug)
}

// Changes returns the columns this request touches.
func (r *UpdateCategoryRequest) Changes() Changes {
	changes := Changes{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Slug != nil {
		changes["slug"] = *r.Slug
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Icon.Set {
		changes["icon"] = r.Icon.Arg()
	}
	return changes
}

// DeleteRequest carries the id of DELETE ?id=<id>.
type DeleteRequest struct {
	ID int64 `query:"id" validate:"required,min=1"`
}

func (r *DeleteRequest) Validate() error {
	return validate.Struct(r)
}

// DeleteResponse confirms a deleted row.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
