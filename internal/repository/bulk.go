package repository

import (
	"context"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// CategoryRemap maps the ids a client used in a bulk document onto the
// ids the database assigned to the same categories. It lives for a single
// import.
type CategoryRemap map[model.ClientID]int64

// Resolve returns the stored id for a client id, or nil when the client id
// is empty or was not part of the import.
func (m CategoryRemap) Resolve(id model.ClientID) *int64 {
	if id == "" {
		return nil
	}
	if newID, ok := m[id]; ok {
		return &newID
	}
	return nil
}

// BulkRepository replaces whole collections in one transaction.
type BulkRepository struct {
	db database.TxBeginner
}

func NewBulkRepository(db database.TxBeginner) *BulkRepository {
	return &BulkRepository{db: db}
}

// Import applies every collection present in req atomically. Categories
// are written before products so product references can be remapped.
// Any failure rolls the whole document back.
func (r *BulkRepository) Import(ctx context.Context, req *model.BulkImportRequest) error {
	logger := zerolog.Ctx(ctx)

	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		content := NewContentRepository(tx)
		categories := NewCategoryRepository(tx)
		products := NewProductRepository(tx)

		if req.Services != nil {
			if err := content.ReplaceServices(ctx, *req.Services); err != nil {
				return err
			}
		}
		if req.Articles != nil {
			if err := content.ReplaceArticles(ctx, *req.Articles); err != nil {
				return err
			}
		}
		if req.About != nil {
			if err := content.ReplaceAbout(ctx, *req.About); err != nil {
				return err
			}
		}
		if req.Advantages != nil {
			if err := content.ReplaceAdvantages(ctx, *req.Advantages); err != nil {
				return err
			}
		}
		if req.Partners != nil {
			if err := content.ReplacePartners(ctx, *req.Partners); err != nil {
				return err
			}
		}
		if req.Hero != nil {
			if err := content.ReplaceHero(ctx, *req.Hero); err != nil {
				return err
			}
		}

		remap := CategoryRemap{}
		if req.Categories != nil {
			if err := categories.DeleteAll(ctx); err != nil {
				return err
			}
			for _, category := range *req.Categories {
				id, err := categories.Insert(ctx, category)
				if err != nil {
					return err
				}
				if category.ID != "" {
					remap[category.ID] = id
				}
			}
		}

		if req.Products != nil {
			if err := products.DeleteAll(ctx); err != nil {
				return err
			}
			for _, product := range *req.Products {
				categoryID := remap.Resolve(product.CategoryID)
				if categoryID == nil && product.CategoryID != "" {
					logger.Warn().
						Str("product", product.Name).
						Str("category_id", string(product.CategoryID)).
						Msg("bulk product references an unknown category, storing without one")
				}
				if _, err := products.Insert(ctx, product, categoryID); err != nil {
					return err
				}
			}
		}

		return nil
	})
}
