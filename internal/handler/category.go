package handler

import (
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	Handler
	categories *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:    NewHandler(s),
		categories: categories,
	}
}

func (h *CategoryHandler) List(c echo.Context, req *model.ListCategoriesRequest) ([]model.Category, error) {
	return h.categories.List(c.Request().Context(), req)
}

func (h *CategoryHandler) Create(c echo.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	return h.categories.Create(c.Request().Context(), req)
}

func (h *CategoryHandler) Update(c echo.Context, req *model.UpdateCategoryRequest) (*model.Category, error) {
	return h.categories.Update(c.Request().Context(), req)
}

func (h *CategoryHandler) Delete(c echo.Context, req *model.DeleteRequest) (*model.DeleteResponse, error) {
	if err := h.categories.Delete(c.Request().Context(), req); err != nil {
		return nil, err
	}
	return &model.DeleteResponse{Message: "Category deleted", ID: req.ID}, nil
}
