package service

import (
	"context"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/rs/zerolog"
)

type BulkStore interface {
	Import(ctx context.Context, req *model.BulkImportRequest) error
}

// BulkService replaces whole collections of site content at once.
type BulkService struct {
	store BulkStore
}

func NewBulkService(store BulkStore) *BulkService {
	return &BulkService{store: store}
}

// Import fills in missing slugs and hands the document to the store,
// which applies it in a single transaction.
func (s *BulkService) Import(ctx context.Context, req *model.BulkImportRequest) (*model.BulkImportResponse, error) {
	if req.Empty() {
		zerolog.Ctx(ctx).Debug().Msg("bulk import names no collection, nothing to replace")
		return &model.BulkImportResponse{Message: "Data saved successfully"}, nil
	}

	assignSlugs(req)

	if err := s.store.Import(ctx, req); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int("categories", lenOf(req.Categories)).
		Int("products", lenOf(req.Products)).
		Msg("bulk import committed")

	return &model.BulkImportResponse{Message: "Data saved successfully"}, nil
}

// assignSlugs derives a slug from the name for rows that carry none and
// makes all slugs unique within their collection. Both tables are emptied
// by the import, so only the document itself can collide.
func assignSlugs(req *model.BulkImportRequest) {
	if req.Categories != nil {
		slugs := newSlugSet("category")
		for i := range *req.Categories {
			c := &(*req.Categories)[i]
			c.Slug = slugs.next(c.Slug, c.Name)
		}
	}

	if req.Products != nil {
		slugs := newSlugSet("product")
		for i := range *req.Products {
			p := &(*req.Products)[i]
			p.Slug = slugs.next(p.Slug, p.Name)
		}
	}
}

func lenOf[T any](items *[]T) int {
	if items == nil {
		return 0
	}
	return len(*items)
}
