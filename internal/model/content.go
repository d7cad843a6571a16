package model

import (
	"github.com/deppfellow/storefront/internal/errs"
)

// Site content collections. Every column besides the keys is optional,
// the admin frontend owns their shape.

type Service struct {
	Base
	Name        *string `db:"name" json:"name"`
	ImageURL    *string `db:"image_url" json:"image_url"`
	Contact     *string `db:"contact" json:"contact"`
	Link        *string `db:"link" json:"link"`
	Description *string `db:"description" json:"description"`
}

type Article struct {
	Base
	Title    *string `db:"title" json:"title"`
	Content  *string `db:"content" json:"content"`
	ImageURL *string `db:"image_url" json:"image_url"`
	Date     *string `db:"date" json:"date"`
}

type AboutItem struct {
	Base
	Title       *string `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
}

type Advantage struct {
	Base
	Icon        *string `db:"icon" json:"icon"`
	Title       *string `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
}

type Partner struct {
	Base
	Name    *string `db:"name" json:"name"`
	LogoURL *string `db:"logo_url" json:"logo_url"`
}

// HeroSection is logically a singleton: the row with the highest id wins.
type HeroSection struct {
	Base
	Title           *string `db:"title" json:"title"`
	HighlightedText *string `db:"highlighted_text" json:"highlighted_text"`
	Subtitle        *string `db:"subtitle" json:"subtitle"`
	Description     *string `db:"description" json:"description"`
	ImageURL        *string `db:"image_url" json:"image_url"`
}

// ContentType selects a collection on GET /data-manager.
type ContentType string

const (
	ContentServices   ContentType = "services"
	ContentArticles   ContentType = "articles"
	ContentAbout      ContentType = "about"
	ContentAdvantages ContentType = "advantages"
	ContentPartners   ContentType = "partners"
	ContentHero       ContentType = "hero"
	ContentOrders     ContentType = "orders"
	ContentAll        ContentType = "all"
)

func (t ContentType) valid() bool {
	switch t {
	case ContentServices, ContentArticles, ContentAbout, ContentAdvantages,
		ContentPartners, ContentHero, ContentOrders, ContentAll:
		return true
	}
	return false
}

type GetContentRequest struct {
	Type ContentType `query:"type"`
}

// Validate defaults an absent type to "all".
func (r *GetContentRequest) Validate() error {
	if r.Type == "" {
		r.Type = ContentAll
	}
	if !r.Type.valid() {
		return errs.NewBadRequestError("Invalid type parameter", true, nil, nil)
	}
	return nil
}

// SiteContent is the aggregate read. Every key is always present: empty
// collections serialize as [] and a missing hero as {}.
type SiteContent struct {
	Services   []Service   `json:"services"`
	Articles   []Article   `json:"articles"`
	About      []AboutItem `json:"about"`
	Advantages []Advantage `json:"advantages"`
	Partners   []Partner   `json:"partners"`
	Hero       any         `json:"hero"`
	Orders     []Order     `json:"orders"`
}

// HeroOrEmpty returns hero, or an empty object when there is none.
func HeroOrEmpty(hero *HeroSection) any {
	if hero == nil {
		return struct{}{}
	}
	return hero
}

// ExportRequest takes no parameters; GET /data-manager/export always
// returns the full aggregate.
type ExportRequest struct{}

func (r *ExportRequest) Validate() error {
	return nil
}
