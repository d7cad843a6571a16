package service

import (
	"github.com/deppfellow/storefront/internal/lib/job"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/server"
)

type Services struct {
	Categories *CategoryService
	Products   *ProductService
	Content    *ContentService
	Orders     *OrderService
	Bulk       *BulkService
	Job        *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A nil *job.JobService must not become a non-nil interface.
	var notifier OrderNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Categories: NewCategoryService(repos.Categories),
		Products:   NewProductService(repos.Products),
		Content:    NewContentService(repos.Content, repos.Orders),
		Orders:     NewOrderService(repos.Orders, notifier),
		Bulk:       NewBulkService(repos.Bulk),
		Job:        s.Job,
	}, nil
}
