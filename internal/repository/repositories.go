package repository

import (
	"github.com/deppfellow/storefront/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Categories *CategoryRepository
	Products   *ProductRepository
	Content    *ContentRepository
	Orders     *OrderRepository
	Bulk       *BulkRepository
}

// NewRepositories wires every repository onto the shared connection pool.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Categories: NewCategoryRepository(pool),
		Products:   NewProductRepository(pool),
		Content:    NewContentRepository(pool),
		Orders:     NewOrderRepository(pool),
		Bulk:       NewBulkRepository(pool),
	}
}
