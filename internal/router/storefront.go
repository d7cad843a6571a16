package router

import (
	"net/http"

	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/labstack/echo/v4"
)

func registerStorefrontRoutes(r *echo.Echo, h *handler.Handlers) {
	categories := r.Group("/categories")
	categories.GET("", handler.Handle(h.Categories.Handler, h.Categories.List, http.StatusOK, &model.ListCategoriesRequest{}))
	categories.POST("", handler.Handle(h.Categories.Handler, h.Categories.Create, http.StatusCreated, &model.CreateCategoryRequest{}))
	categories.PUT("", handler.Handle(h.Categories.Handler, h.Categories.Update, http.StatusOK, &model.UpdateCategoryRequest{}))
	categories.DELETE("", handler.Handle(h.Categories.Handler, h.Categories.Delete, http.StatusOK, &model.DeleteRequest{}))

	products := r.Group("/products")
	products.GET("", handler.Handle(h.Products.Handler, h.Products.List, http.StatusOK, &model.ListProductsRequest{}))
	products.POST("", handler.Handle(h.Products.Handler, h.Products.Create, http.StatusCreated, &model.CreateProductRequest{}))
	products.PUT("", handler.Handle(h.Products.Handler, h.Products.Update, http.StatusOK, &model.UpdateProductRequest{}))
	products.DELETE("", handler.Handle(h.Products.Handler, h.Products.Delete, http.StatusOK, &model.DeleteRequest{}))

	content := r.Group("/data-manager")
	content.GET("", handler.Handle(h.Content.Handler, h.Content.Get, http.StatusOK, &model.GetContentRequest{}))
	content.POST("", h.Content.Post())
	content.GET("/export", h.Content.ExportFile())
}
