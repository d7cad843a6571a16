package service

import (
	"context"
	"time"

	"github.com/deppfellow/storefront/internal/model"
)

type ProductStore interface {
	List(ctx context.Context, search string, categoryID *int64) ([]model.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, req *model.CreateProductRequest, slug string) (*model.Product, error)
	Update(ctx context.Context, id int64, changes model.Changes) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ProductService struct {
	store ProductStore
	now   func() time.Time
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store, now: time.Now}
}

func (s *ProductService) List(ctx context.Context, req *model.ListProductsRequest) ([]model.Product, error) {
	return s.store.List(ctx, req.Search, req.CategoryID)
}

func (s *ProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	slug, err := availableSlug(ctx, req.Slug, s.store.SlugExists, s.now)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, req, slug)
}

func (s *ProductService) Update(ctx context.Context, req *model.UpdateProductRequest) (*model.Product, error) {
	changes := req.Changes()
	if len(changes) == 0 {
		return nil, errNothingToUpdate
	}

	return s.store.Update(ctx, req.ID, changes)
}

func (s *ProductService) Delete(ctx context.Context, req *model.DeleteRequest) error {
	return s.store.Delete(ctx, req.ID)
}
