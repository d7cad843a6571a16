package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/shopspring/decimal"
)

// ClientID is an identifier chosen by the client in a bulk document. The
// frontend sends both 1 and "1", so either form decodes to the same key.
type ClientID string

func (id *ClientID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ClientID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("client id must be a string or a number: %w", err)
	}

	// 1, 1.0 and 1e0 name the same id.
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("client id must be a string or a number: %w", err)
	}
	*id = ClientID(d.String())
	return nil
}

type ServiceInput struct {
	Name        *string `json:"name"`
	ImageURL    *string `json:"imageUrl"`
	Contact     *string `json:"contact"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
}

type ArticleInput struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
	Date     *string `json:"date"`
}

type AboutItemInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type AdvantageInput struct {
	Icon        *string `json:"icon"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type PartnerInput struct {
	Name    *string `json:"name"`
	LogoURL *string `json:"logoUrl"`
}

type HeroInput struct {
	Title           *string `json:"title"`
	HighlightedText *string `json:"highlightedText"`
	Subtitle        *string `json:"subtitle"`
	Description     *string `json:"description"`
	ImageURL        *string `json:"imageUrl"`
}

// CategoryInput keeps the client's id so products can be remapped onto
// the id the database assigns.
type CategoryInput struct {
	ID          ClientID `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Icon        *string  `json:"icon"`
}

type ProductInput struct {
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	CategoryID  ClientID         `json:"categoryId"`
	IsService   bool             `json:"isService"`
	Specs       json.RawMessage  `json:"specs"`
}

// SpecsArg is the bind value for the specs column.
func (p ProductInput) SpecsArg() any {
	return jsonArg(p.Specs)
}

// BulkImportRequest is the body of POST /data-manager?type=bulk.
//
// A nil slice means the key was absent and the table is left alone; a
// present but empty list empties the table.
type BulkImportRequest struct {
	Services   *[]ServiceInput   `json:"services"`
	Articles   *[]ArticleInput   `json:"articles"`
	About      *[]AboutItemInput `json:"about"`
	Advantages *[]AdvantageInput `json:"advantages"`
	Partners   *[]PartnerInput   `json:"partners"`
	Hero       *HeroInput        `json:"hero"`
	Categories *[]CategoryInput  `json:"categories"`
	Products   *[]ProductInput   `json:"products"`
}

// Validate trims names and checks the rows that feed NOT NULL columns.
// Slugs may be omitted; they are derived from the name later.
func (r *BulkImportRequest) Validate() error {
	var fieldErrors []errs.FieldError

	if r.Categories != nil {
		for i := range *r.Categories {
			c := &(*r.Categories)[i]
			c.Name = trim(c.Name)
			c.Slug = trim(c.Slug)
			c.Description = trim(c.Description)
			if c.Name == "" {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: fmt.Sprintf("categories[%d].name", i),
					Error: "is required",
				})
			}
		}
	}

	if r.Products != nil {
		for i := range *r.Products {
			p := &(*r.Products)[i]
			p.Name = trim(p.Name)
			p.Slug = trim(p.Slug)
			p.Description = trim(p.Description)
			if p.Name == "" {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: fmt.Sprintf("products[%d].name", i),
					Error: "is required",
				})
			}
			if p.Price == nil {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: fmt.Sprintf("products[%d].price", i),
					Error: "is required",
				})
			}
		}
	}

	if len(fieldErrors) > 0 {
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors)
	}

	return nil
}

// Empty reports whether the document names no collection at all.
func (r *BulkImportRequest) Empty() bool {
	return r.Services == nil && r.Articles == nil && r.About == nil &&
		r.Advantages == nil && r.Partners == nil && r.Hero == nil &&
		r.Categories == nil && r.Products == nil
}

// BulkImportResponse is returned when a bulk import committed.
type BulkImportResponse struct {
	Message string `json:"message"`
}
