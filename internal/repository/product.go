package repository

import (
	"context"
	"strings"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const productColumns = "id, name, slug, description, price, image_url, category_id, is_service, specs, created_at, updated_at"

var productUpdatable = map[string]bool{
	"name":        true,
	"slug":        true,
	"description": true,
	"price":       true,
	"image_url":   true,
	"category_id": true,
	"is_service":  true,
	"specs":       true,
}

type ProductRepository struct {
	db database.DBTX
}

func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns products newest first with their category name joined in.
func (r *ProductRepository) List(ctx context.Context, search string, categoryID *int64) ([]model.Product, error) {
	var conditions []string
	args := pgx.NamedArgs{}

	if search != "" {
		conditions = append(conditions, "(p.name ILIKE @search OR p.description ILIKE @search)")
		args["search"] = likePattern(search)
	}
	if categoryID != nil {
		conditions = append(conditions, "p.category_id = @category_id")
		args["category_id"] = *categoryID
	}

	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.image_url, p.category_id,
		       p.is_service, p.specs, p.created_at, p.updated_at, c.name AS category_name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC, p.id DESC"

	products, err := listRows[model.Product](ctx, r.db, query, args)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (r *ProductRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)", slug).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "failed to check product slug")
	}
	return exists, nil
}

// Create inserts the product with the given (already disambiguated) slug.
func (r *ProductRepository) Create(ctx context.Context, req *model.CreateProductRequest, slug string) (*model.Product, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO products (name, slug, description, price, image_url, category_id, is_service, specs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		req.Name, slug, req.Description, *req.Price, req.ImageURL, req.CategoryID, req.IsService, req.SpecsArg(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	// category_name is only produced by the listing join.
	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[model.Product])
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// Update applies a sparse change set and returns the stored row.
func (r *ProductRepository) Update(ctx context.Context, id int64, changes model.Changes) (*model.Product, error) {
	query, args, err := buildUpdate("products", productUpdatable, id, changes, productColumns)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[model.Product])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewNotFoundError("Product not found", true, nil)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("Product not found", true, nil)
	}
	return nil
}

// DeleteAll empties the table.
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM products"); err != nil {
		return errors.Wrap(err, "failed to clear products")
	}
	return nil
}

// Insert stores a bulk row whose category reference was already remapped.
func (r *ProductRepository) Insert(ctx context.Context, in model.ProductInput, categoryID *int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (name, slug, description, price, image_url, category_id, is_service, specs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		in.Name, in.Slug, in.Description, *in.Price, in.ImageURL, categoryID, in.IsService, in.SpecsArg(),
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert product")
	}
	return id, nil
}
