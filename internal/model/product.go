package model

import (
	"encoding/json"
	"strconv"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/validation"
	"github.com/shopspring/decimal"
)

type Product struct {
	Base
	Name         string          `db:"name" json:"name"`
	Slug         string          `db:"slug" json:"slug"`
	Description  string          `db:"description" json:"description"`
	Price        decimal.Decimal `db:"price" json:"price"`
	ImageURL     *string         `db:"image_url" json:"image_url"`
	CategoryID   *int64          `db:"category_id" json:"category_id"`
	IsService    bool            `db:"is_service" json:"is_service"`
	Specs        json.RawMessage `db:"specs" json:"specs"`
	CategoryName *string         `db:"category_name" json:"category_name,omitempty"`
}

// ListProductsRequest filters GET /products. category_id arrives as a raw
// query string and is parsed by Validate.
type ListProductsRequest struct {
	Search        string `query:"search"`
	RawCategoryID string `query:"category_id"`

	CategoryID *int64 `query:"-"`
}

func (r *ListProductsRequest) Validate() error {
	r.Search = trim(r.Search)
	r.CategoryID = nil

	raw := trim(r.RawCategoryID)
	if raw == "" {
		return nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return validation.CustomValidationErrors{{Field: "category_id", Message: "must be an integer"}}
	}
	r.CategoryID = &id

	return nil
}

type CreateProductRequest struct {
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	CategoryID  *int64           `json:"category_id"`
	IsService   bool             `json:"is_service"`
	Specs       json.RawMessage  `json:"specs"`
}

// Validate trims every string field and reports blank required fields.
func (r *CreateProductRequest) Validate() error {
	r.Name = trim(r.Name)
	r.Slug = trim(r.Slug)
	r.Description = trim(r.Description)
	r.ImageURL = trimPtr(r.ImageURL)

	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Slug == "" {
		missing = append(missing, "slug")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return errs.MissingFieldsError(missing...)
	}

	if r.Price.IsNegative() {
		return errs.NewBadRequestError("Validation failed: price must not be negative", true, nil,
			[]errs.FieldError{{Field: "price", Error: "must not be negative"}})
	}

	return nil
}

// SpecsArg is the bind value for the specs column.
func (r *CreateProductRequest) SpecsArg() any {
	return jsonArg(r.Specs)
}

// UpdateProductRequest is a sparse update. CategoryID, ImageURL and Specs
// may be cleared with an explicit null; price may not.
type UpdateProductRequest struct {
	ID          int64                  `json:"id" validate:"required,min=1"`
	Name        *string                `json:"name"`
	Slug        *string                `json:"slug"`
	Description *string                `json:"description"`
	Price       Field[decimal.Decimal] `json:"price"`
	ImageURL    Field[string]          `json:"image_url"`
	CategoryID  Field[int64]           `json:"category_id"`
	IsService   *bool                  `json:"is_service"`
	Specs       Field[json.RawMessage] `json:"specs"`
}

func (r *UpdateProductRequest) Validate() error {
	r.Name = trimPtr(r.Name)
	r.Slug = trimPtr(r.Slug)
	r.Description = trimPtr(r.Description)
	if r.ImageURL.Set && !r.ImageURL.Null {
		r.ImageURL.Value = trim(r.ImageURL.Value)
	}

	if err := validate.Struct(r); err != nil {
		return err
	}

	if r.Price.Null {
		return errs.NewBadRequestError("Validation failed: price cannot be null", true, nil,
			[]errs.FieldError{{Field: "price", Error: "cannot be null"}})
	}
	if r.Price.Set && r.Price.Value.IsNegative() {
		return errs.NewBadRequestError("Validation failed: price must not be negative", true, nil,
			[]errs.FieldError{{Field: "price", Error: "must not be negative"}})
	}

	return blankFields([]string{"name", "slug"}, r.Name, r.Slug)
}

// Changes returns the columns this request touches.
func (r *UpdateProductRequest) Changes() Changes {
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
	if r.Price.Set {
		changes["price"] = r.Price.Value
	}
	if r.ImageURL.Set {
		changes["image_url"] = r.ImageURL.Arg()
	}
	if r.CategoryID.Set {
		changes["category_id"] = r.CategoryID.Arg()
	}
	if r.IsService != nil {
		changes["is_service"] = *r.IsService
	}
	if r.Specs.Set {
		changes["specs"] = jsonArg(r.Specs.Value)
	}
	return changes
}
