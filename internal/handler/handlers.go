package handler

import (
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Categories *CategoryHandler
	Products   *ProductHandler
	Content    *ContentHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Categories: NewCategoryHandler(s, services.Categories),
		Products:   NewProductHandler(s, services.Products),
		Content:    NewContentHandler(s, services.Content, services.Orders, services.Bulk),
	}
}
