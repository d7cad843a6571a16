package handler

import (
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	Handler
	products *service.ProductService
}

func NewProductHandler(s *server.Server, products *service.ProductService) *ProductHandler {
	return &ProductHandler{
		Handler:  NewHandler(s),
		products: products,
	}
}

// List answers GET /products, optionally filtered by search and category_id.
func (h *ProductHandler) List(c echo.Context, req *model.ListProductsRequest) ([]model.Product, error) {
	return h.products.List(c.Request().Context(), req)
}

func (h *ProductHandler) Create(c echo.Context, req *model.CreateProductRequest) (*model.Product, error) {
	return h.products.Create(c.Request().Context(), req)
}

func (h *ProductHandler) Update(c echo.Context, req *model.UpdateProductRequest) (*model.Product, error) {
	return h.products.Update(c.Request().Context(), req)
}

func (h *ProductHandler) Delete(c echo.Context, req *model.DeleteRequest) (*model.DeleteResponse, error) {
	if err := h.products.Delete(c.Request().Context(), req); err != nil {
		return nil, err
	}
	return &model.DeleteResponse{Message: "Product deleted", ID: req.ID}, nil
}
