package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_UniqueViolationIsConflict(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "products",
		ConstraintName: "products_slug_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("failed to create product: %w", pgErr)))

	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "PRODUCT_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Product with this Slug already exists", httpErr.Message)
}

func TestHandleError_ConstraintErrorsAreBadRequests(t *testing.T) {
	fk := asHTTPError(t, HandleError(&pgconn.PgError{Code: "23503", TableName: "products", ColumnName: "category_id"}))
	assert.Equal(t, http.StatusBadRequest, fk.Status)
	assert.Equal(t, "The referenced Category does not exist", fk.Message)

	notNull := asHTTPError(t, HandleError(&pgconn.PgError{Code: "23502", TableName: "products", ColumnName: "price"}))
	assert.Equal(t, http.StatusBadRequest, notNull.Status)
	assert.Equal(t, []errs.FieldError{{Field: "price", Error: "is required"}}, notNull.Errors)

	check := asHTTPError(t, HandleError(&pgconn.PgError{Code: "23514", TableName: "products", ColumnName: "price"}))
	assert.Equal(t, "PRODUCT_INVALID", check.Code)
}

func TestHandleError_Fallbacks(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, asHTTPError(t, HandleError(pgx.ErrNoRows)).Status)
	assert.Equal(t, http.StatusNotFound, asHTTPError(t, HandleError(sql.ErrNoRows)).Status)
	assert.Equal(t, http.StatusInternalServerError, asHTTPError(t, HandleError(&pgconn.PgError{Code: "40001"})).Status)
	assert.Equal(t, http.StatusInternalServerError, asHTTPError(t, HandleError(errors.New("boom"))).Status)

	passthrough := errs.NewBadRequestError("nope", true, nil, nil)
	assert.Same(t, passthrough, HandleError(passthrough))
}

func TestErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}

	assert.Equal(t, UniqueViolation, ErrCode(pgErr))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(pgErr)))
	assert.Equal(t, Other, ErrCode(errors.New("x")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "slug", extractColumnForUniqueViolation("categories_slug_key"))
	assert.Equal(t, "slug", extractColumnForUniqueViolation("unique_products_slug"))
	assert.Equal(t, "", extractColumnForUniqueViolation("products_pkey"))
}
