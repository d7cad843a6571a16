package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// int64Arg matches a *int64 argument pointing at want, or a nil pointer
// when want is nil.
type int64Arg struct {
	want *int64
}

func (a int64Arg) Match(v any) bool {
	got, ok := v.(*int64)
	if !ok {
		return false
	}
	if a.want == nil || got == nil {
		return a.want == nil && got == nil
	}
	return *a.want == *got
}

func ptr[T any](v T) *T {
	return &v
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

// recordingDB remembers the SQL text and arguments of every query before
// handing it to pgxmock.
type recordingDB struct {
	pgxmock.PgxPoolIface
	queries []string
	args    [][]any
}

func (r *recordingDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.queries = append(r.queries, sql)
	r.args = append(r.args, args)
	return r.PgxPoolIface.Query(ctx, sql, args...)
}

var (
	categoryRowColumns = []string{"id", "name", "slug", "description", "icon", "created_at", "updated_at"}
	productRowColumns  = []string{
		"id", "name", "slug", "description", "price", "image_url", "category_id",
		"is_service", "specs", "created_at", "updated_at",
	}
)

func TestBuildUpdate(t *testing.T) {
	t.Run("sorted columns with bound values", func(t *testing.T) {
		changes := model.Changes{"slug": "chairs", "name": "Chairs", "icon": nil}

		query, args, err := buildUpdate("categories", categoryUpdatable, 5, changes, "id")
		require.NoError(t, err)

		assert.Equal(t,
			"UPDATE categories SET icon = @icon, name = @name, slug = @slug, updated_at = NOW() WHERE id = @id RETURNING id",
			query)
		assert.Equal(t, pgx.NamedArgs{"id": int64(5), "icon": nil, "name": "Chairs", "slug": "chairs"}, args)
	})

	t.Run("no changes", func(t *testing.T) {
		_, _, err := buildUpdate("categories", categoryUpdatable, 5, model.Changes{}, "")
		assert.ErrorIs(t, err, errNoChanges)
	})

	t.Run("rejects unknown columns", func(t *testing.T) {
		_, _, err := buildUpdate("categories", categoryUpdatable, 5, model.Changes{"id = 1; --": "x"}, "")
		assert.Error(t, err)
	})
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%chair%", likePattern("chair"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestCategoryRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectExec("DELETE FROM categories WHERE id").
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM categories WHERE id").
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(context.Background(), 3))

	err := repo.Delete(context.Background(), 99)
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery("UPDATE products SET").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := repo.Update(context.Background(), 404, model.Changes{"name": "Lamp"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateWithoutChangesSkipsDatabase(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	_, err := repo.Update(context.Background(), 1, model.Changes{})
	assert.ErrorIs(t, err, errNoChanges)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRemap_Resolve(t *testing.T) {
	remap := CategoryRemap{"1": 42}

	assert.Equal(t, ptr(int64(42)), remap.Resolve("1"))
	assert.Nil(t, remap.Resolve("2"))
	assert.Nil(t, remap.Resolve(""))
}

func TestBulkRepository_ImportRemapsCategories(t *testing.T) {
	mock := newMock(t)
	repo := NewBulkRepository(mock)

	price := decimal.NewFromInt(10)
	req := &model.BulkImportRequest{
		Categories: &[]model.CategoryInput{{ID: "1", Name: "A", Slug: "a"}},
		Products: &[]model.ProductInput{
			{Name: "P", Slug: "p", Price: &price, CategoryID: "1"},
			{Name: "Q", Slug: "q", Price: &price, CategoryID: "7"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM categories").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("A", "a", "", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec("DELETE FROM products").
		WillReturnResult(pgxmock.NewResult("DELETE", 5))
	mock.ExpectQuery("INSERT INTO products").
		WithArgs("P", "p", "", pgxmock.AnyArg(), pgxmock.AnyArg(), int64Arg{want: ptr(int64(42))}, false, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Q", "q", "", pgxmock.AnyArg(), pgxmock.AnyArg(), int64Arg{}, false, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(101)))
	mock.ExpectCommit()

	require.NoError(t, repo.Import(context.Background(), req))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkRepository_ImportOnlyTouchesPresentKeys(t *testing.T) {
	mock := newMock(t)
	repo := NewBulkRepository(mock)

	title := "Welcome"
	req := &model.BulkImportRequest{
		Partners: &[]model.PartnerInput{},
		Hero:     &model.HeroInput{Title: &title},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM partners").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("DELETE FROM hero_section").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO hero_section").
		WithArgs(&title, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Import(context.Background(), req))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkRepository_ImportRollsBackOnFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewBulkRepository(mock)

	price := decimal.NewFromInt(10)
	req := &model.BulkImportRequest{
		Services:   &[]model.ServiceInput{{Name: ptr("Repair")}},
		Categories: &[]model.CategoryInput{{ID: "1", Name: "A", Slug: "a"}},
		Products:   &[]model.ProductInput{{Name: "P", Slug: "p", Price: &price, CategoryID: "1"}},
	}

	insertErr := errors.New("invalid input syntax for type numeric")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM services").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("INSERT INTO services").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("DELETE FROM categories").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("INSERT INTO categories").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec("DELETE FROM products").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("INSERT INTO products").
		WillReturnError(insertErr)
	mock.ExpectRollback()

	err := repo.Import(context.Background(), req)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to insert product")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListBindsFilters(t *testing.T) {
	mock := newMock(t)
	db := &recordingDB{PgxPoolIface: mock}
	repo := NewProductRepository(db)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM products p\s+LEFT JOIN categories c ON c.id = p.category_id`).
		WillReturnRows(pgxmock.NewRows(append(productRowColumns, "category_name")).
			AddRow(int64(7), "Desk lamp", "desk-lamp", "50%_off this week", "19.90", ptr("lamp.png"), ptr(int64(3)),
				false, json.RawMessage(`{"watts":40}`), created, created, ptr("Lighting")))

	products, err := repo.List(context.Background(), "50%_off", ptr(int64(3)))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, db.queries, 1)
	query := db.queries[0]
	assert.Contains(t, query, "p.name ILIKE @search OR p.description ILIKE @search")
	assert.Contains(t, query, "p.category_id = @category_id")
	assert.Contains(t, query, "ORDER BY p.created_at DESC, p.id DESC")
	assert.NotContains(t, query, "50%_off")
	assert.Equal(t, []any{pgx.NamedArgs{"search": `%50\%\_off%`, "category_id": int64(3)}}, db.args[0])

	require.Len(t, products, 1)
	product := products[0]
	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, created, product.CreatedAt)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("19.90")))
	assert.Equal(t, ptr(int64(3)), product.CategoryID)
	assert.Equal(t, ptr("Lighting"), product.CategoryName)
	assert.JSONEq(t, `{"watts":40}`, string(product.Specs))
}

func TestProductRepository_ListWithoutFilters(t *testing.T) {
	mock := newMock(t)
	db := &recordingDB{PgxPoolIface: mock}
	repo := NewProductRepository(db)

	mock.ExpectQuery("FROM products p").
		WillReturnRows(pgxmock.NewRows(append(productRowColumns, "category_name")))

	products, err := repo.List(context.Background(), "", nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.NotContains(t, db.queries[0], "WHERE")
	assert.Equal(t, []any{pgx.NamedArgs{}}, db.args[0])

	require.NotNil(t, products)
	body, err := json.Marshal(products)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestCategoryRepository_ListBindsSearch(t *testing.T) {
	mock := newMock(t)
	db := &recordingDB{PgxPoolIface: mock}
	repo := NewCategoryRepository(db)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM categories WHERE").
		WillReturnRows(pgxmock.NewRows(categoryRowColumns).
			AddRow(int64(2), "Chairs", "chairs", "Seats", ptr("chair.svg"), created, created))

	categories, err := repo.List(context.Background(), "'; DROP TABLE categories; --")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	query := db.queries[0]
	assert.Contains(t, query, "(name ILIKE @search OR description ILIKE @search)")
	assert.NotContains(t, query, "DROP TABLE")
	assert.Equal(t, []any{pgx.NamedArgs{"search": "%'; DROP TABLE categories; --%"}}, db.args[0])

	require.Len(t, categories, 1)
	assert.Equal(t, int64(2), categories[0].ID)
	assert.Equal(t, ptr("chair.svg"), categories[0].Icon)
}

func TestCategoryRepository_ListEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery("FROM categories").
		WillReturnRows(pgxmock.NewRows(categoryRowColumns))

	categories, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, categories)
	assert.Empty(t, categories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepository(mock)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	req := &model.CreateCategoryRequest{Name: "Chairs", Slug: "chairs", Description: "Seats", Icon: ptr("chair.svg")}

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Chairs", "chairs-1714557600", "Seats", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(categoryRowColumns).
			AddRow(int64(9), "Chairs", "chairs-1714557600", "Seats", ptr("chair.svg"), created, created))

	category, err := repo.Create(context.Background(), req, "chairs-1714557600")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, int64(9), category.ID)
	assert.Equal(t, "chairs-1714557600", category.Slug)
	assert.Equal(t, created, category.UpdatedAt)
}

func TestProductRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	price := decimal.RequireFromString("19.90")
	req := &model.CreateProductRequest{
		Name:       "Desk lamp",
		Slug:       "desk-lamp",
		Price:      &price,
		CategoryID: ptr(int64(3)),
		Specs:      json.RawMessage(`{"watts":40}`),
	}

	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Desk lamp", "desk-lamp", "", price, pgxmock.AnyArg(), int64Arg{want: ptr(int64(3))}, false, `{"watts":40}`).
		WillReturnRows(pgxmock.NewRows(productRowColumns).
			AddRow(int64(11), "Desk lamp", "desk-lamp", "", "19.90", ptr("lamp.png"), ptr(int64(3)),
				false, json.RawMessage(`{"watts":40}`), created, created))

	product, err := repo.Create(context.Background(), req, "desk-lamp")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, int64(11), product.ID)
	assert.True(t, product.Price.Equal(price))
	assert.JSONEq(t, `{"watts":40}`, string(product.Specs))
	assert.Nil(t, product.CategoryName)
}

func TestProductRepository_CreateBindsNullSpecs(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	price := decimal.NewFromInt(5)
	req := &model.CreateProductRequest{Name: "Lamp", Slug: "lamp", Price: &price, Specs: json.RawMessage("null")}

	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Lamp", "lamp", "", price, pgxmock.AnyArg(), int64Arg{}, false, nil).
		WillReturnError(errors.New("stop"))

	_, err := repo.Create(context.Background(), req, "lamp")
	assert.ErrorContains(t, err, "failed to create product")
	require.NoError(t, mock.ExpectationsWereMet())
}
