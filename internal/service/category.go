package service

import (
	"context"
	"time"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/model"
)

// CategoryStore is the persistence the category service needs.
type CategoryStore interface {
	List(ctx context.Context, search string) ([]model.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, req *model.CreateCategoryRequest, slug string) (*model.Category, error)
	Update(ctx context.Context, id int64, changes model.Changes) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryService struct {
	store CategoryStore
	now   func() time.Time
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store, now: time.Now}
}

func (s *CategoryService) List(ctx context.Context, req *model.ListCategoriesRequest) ([]model.Category, error) {
	return s.store.List(ctx, req.Search)
}

// Create stores a category. A taken slug is suffixed rather than rejected.
func (s *CategoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	slug, err := availableSlug(ctx, req.Slug, s.store.SlugExists, s.now)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, req, slug)
}

func (s *CategoryService) Update(ctx context.Context, req *model.UpdateCategoryRequest) (*model.Category, error) {
	changes := req.Changes()
	if len(changes) == 0 {
		return nil, errNothingToUpdate
	}

	return s.store.Update(ctx, req.ID, changes)
}

func (s *CategoryService) Delete(ctx context.Context, req *model.DeleteRequest) error {
	return s.store.Delete(ctx, req.ID)
}

var errNothingToUpdate = errs.NewBadRequestError("No fields to update", true, nil, nil)
