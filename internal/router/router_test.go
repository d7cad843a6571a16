package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCategories struct {
	calls int
	err   error
}

func (s *stubCategories) List(context.Context, string) ([]model.Category, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []model.Category{}, nil
}

func (s *stubCategories) SlugExists(context.Context, string) (bool, error) {
	s.calls++
	return false, s.err
}

func (s *stubCategories) Create(_ context.Context, req *model.CreateCategoryRequest, slug string) (*model.Category, error) {
	s.calls++
	return &model.Category{Base: model.Base{ID: 7}, Name: req.Name, Slug: slug}, nil
}

func (s *stubCategories) Update(context.Context, int64, model.Changes) (*model.Category, error) {
	s.calls++
	return nil, errs.NewNotFoundError("Category not found", true, nil)
}

func (s *stubCategories) Delete(context.Context, int64) error {
	s.calls++
	return s.err
}

type stubProducts struct{}

func (stubProducts) List(context.Context, string, *int64) ([]model.Product, error) {
	return []model.Product{}, nil
}
func (stubProducts) SlugExists(context.Context, string) (bool, error) { return false, nil }
func (stubProducts) Create(_ context.Context, req *model.CreateProductRequest, slug string) (*model.Product, error) {
	return &model.Product{Base: model.Base{ID: 1}, Name: req.Name, Slug: slug, Price: *req.Price}, nil
}
func (stubProducts) Update(context.Context, int64, model.Changes) (*model.Product, error) {
	return nil, errs.NewNotFoundError("Product not found", true, nil)
}
func (stubProducts) Delete(context.Context, int64) error { return nil }

type stubContent struct{}

func (stubContent) ListServices(context.Context) ([]model.Service, error)     { return nil, nil }
func (stubContent) ListArticles(context.Context) ([]model.Article, error)     { return nil, nil }
func (stubContent) ListAbout(context.Context) ([]model.AboutItem, error)      { return nil, nil }
func (stubContent) ListAdvantages(context.Context) ([]model.Advantage, error) { return nil, nil }
func (stubContent) ListPartners(context.Context) ([]model.Partner, error)     { return nil, nil }
func (stubContent) LatestHero(context.Context) (*model.HeroSection, error)    { return nil, nil }

type stubOrders struct{}

func (stubOrders) List(context.Context) ([]model.Order, error) { return nil, nil }
func (stubOrders) Create(_ context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	return &model.Order{
		Base:              model.Base{ID: 11},
		Items:             req.Items,
		Total:             *req.Total,
		CustomerFirstName: req.Customer.FirstName,
		Status:            req.Status,
	}, nil
}

type stubBulk struct{ calls int }

func (b *stubBulk) Import(context.Context, *model.BulkImportRequest) error {
	b.calls++
	return nil
}

type fixture struct {
	echo       *echo.Echo
	categories *stubCategories
	bulk       *stubBulk
}

func newFixture(t *testing.T, env string) *fixture {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{Primary: config.Primary{Env: env}},
		Logger: &logger,
	}

	categories := &stubCategories{}
	bulk := &stubBulk{}
	orders := stubOrders{}

	services := &service.Services{
		Categories: service.NewCategoryService(categories),
		Products:   service.NewProductService(stubProducts{}),
		Content:    service.NewContentService(stubContent{}, orders),
		Orders:     service.NewOrderService(orders, nil),
		Bulk:       service.NewBulkService(bulk),
	}

	return &fixture{
		echo:       NewRouter(s, handler.NewHandlers(s, services)),
		categories: categories,
		bulk:       bulk,
	}
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPreflightShortCircuits(t *testing.T) {
	f := newFixture(t, "development")

	for _, target := range []string{"/categories", "/products", "/data-manager?type=bulk", "/not-a-route"} {
		rec := f.do(http.MethodOptions, target, "")

		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Empty(t, rec.Body.String(), target)
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
		assert.Equal(t, "86400", rec.Header().Get(echo.HeaderAccessControlMaxAge))
	}

	assert.Zero(t, f.categories.calls)
	assert.Zero(t, f.bulk.calls)
}

func TestEveryResponseCarriesCORSHeaders(t *testing.T) {
	f := newFixture(t, "development")

	ok := f.do(http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.JSONEq(t, "[]", ok.Body.String())
	assert.Equal(t, "*", ok.Header().Get(echo.HeaderAccessControlAllowOrigin))

	failed := f.do(http.MethodPost, "/categories", `{}`)
	assert.Equal(t, http.StatusBadRequest, failed.Code)
	assert.Equal(t, "*", failed.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestUnknownMethodAndRoute(t *testing.T) {
	f := newFixture(t, "development")

	rec := f.do(http.MethodPatch, "/categories", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decodeError(t, rec).Message)

	rec = f.do(http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestCategoryRoutes(t *testing.T) {
	f := newFixture(t, "development")

	rec := f.do(http.MethodPost, "/categories", `{"name":"  ","description":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: name, slug", decodeError(t, rec).Message)
	assert.Zero(t, f.categories.calls)

	rec = f.do(http.MethodPost, "/categories/", `{"name":" Chairs ","slug":"chairs"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Chairs", created.Name)
	assert.Equal(t, "chairs", created.Slug)

	rec = f.do(http.MethodPut, "/categories", `{"id":5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", decodeError(t, rec).Message)

	rec = f.do(http.MethodPut, "/categories", `{"id":5,"name":"Lamps"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category not found", decodeError(t, rec).Message)

	rec = f.do(http.MethodDelete, "/categories?id=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Category deleted","id":3}`, rec.Body.String())

	rec = f.do(http.MethodDelete, "/categories", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductRoutes(t *testing.T) {
	f := newFixture(t, "development")

	rec := f.do(http.MethodPost, "/products", `{"name":"Desk","slug":"desk"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: price", decodeError(t, rec).Message)

	rec = f.do(http.MethodPost, "/products", `{"name":"Desk","slug":"desk","price":"129.50"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":"129.5"`)

	rec = f.do(http.MethodGet, "/products?category_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/products?category_id=2&search=desk", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDataManagerRoutes(t *testing.T) {
	f := newFixture(t, "development")

	rec := f.do(http.MethodGet, "/data-manager", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"services":[],"articles":[],"about":[],"advantages":[],"partners":[],"hero":{},"orders":[]}`,
		rec.Body.String())

	rec = f.do(http.MethodGet, "/data-manager?type=bogus", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid type parameter", decodeError(t, rec).Message)

	rec = f.do(http.MethodPost, "/data-manager?type=refund", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request", decodeError(t, rec).Message)

	rec = f.do(http.MethodPost, "/data-manager?type=order", `{"total":42,"customer":{"firstName":" Ann "}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, model.DefaultOrderStatus, order.Status)
	assert.JSONEq(t, "[]", string(order.Items))
	require.NotNil(t, order.CustomerFirstName)
	assert.Equal(t, "Ann", *order.CustomerFirstName)

	rec = f.do(http.MethodPost, "/data-manager?type=bulk", `{"about":[{"title":"Since 1999"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Data saved successfully"}`, rec.Body.String())
	assert.Equal(t, 1, f.bulk.calls)

	rec = f.do(http.MethodGet, "/data-manager/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "storefront-export.json")
}

func TestInternalErrorExposure(t *testing.T) {
	dev := newFixture(t, "development")
	dev.categories.err = errors.New("connection reset by peer")

	rec := dev.do(http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "connection reset by peer", decodeError(t, rec).Message)

	prod := newFixture(t, "production")
	prod.categories.err = errors.New("connection reset by peer")

	rec = prod.do(http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decodeError(t, rec).Message)
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t, "development")

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	rec = f.do(http.MethodGet, "/categories", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
