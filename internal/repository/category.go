package repository

import (
	"context"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const categoryColumns = "id, name, slug, description, icon, created_at, updated_at"

var categoryUpdatable = map[string]bool{
	"name":        true,
	"slug":        true,
	"description": true,
	"icon":        true,
}

type CategoryRepository struct {
	db database.DBTX
}

func NewCategoryRepository(db database.DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns categories newest first, optionally filtered by a
// case-insensitive search over name and description.
func (r *CategoryRepository) List(ctx context.Context, search string) ([]model.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories"
	args := pgx.NamedArgs{}

	if search != "" {
		query += " WHERE (name ILIKE @search OR description ILIKE @search)"
		args["search"] = likePattern(search)
	}
	query += " ORDER BY created_at DESC, id DESC"

	categories, err := listRows[model.Category](ctx, r.db, query, args)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (r *CategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)", slug).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to check category slug")
	}
	return exists, nil
}

// Create inserts the category with the given (already disambiguated) slug.
func (r *CategoryRepository) Create(ctx context.Context, req *model.CreateCategoryRequest, slug string) (*model.Category, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO categories (name, slug, description, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		req.Name, slug, req.Description, req.Icon,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	category, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Category])
	if err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return category, nil
}

// Update applies a sparse change set and returns the stored row.
func (r *CategoryRepository) Update(ctx context.Context, id int64, changes model.Changes) (*model.Category, error) {
	query, args, err := buildUpdate("categories", categoryUpdatable, id, changes, categoryColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	category, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Category])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewNotFoundError("Category not found", true, nil)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	return category, nil
}

// Delete removes one category. Products keep existing; the foreign key
// sets their category_id to NULL.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("Category not found", true, nil)
	}
	return nil
}

// DeleteAll empties the table.
func (r *CategoryRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM categories"); err != nil {
		return errors.Wrap(err, "failed to clear categories")
	}
	return nil
}

// Insert stores a bulk row and returns the id the database assigned.
func (r *CategoryRepository) Insert(ctx context.Context, in model.CategoryInput) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (name, slug, description, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		in.Name, in.Slug, in.Description, in.Icon,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert category")
	}
	return id, nil
}
