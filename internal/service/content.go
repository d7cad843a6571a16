package service

import (
	"context"
	"encoding/json"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/model"
)

type ContentStore interface {
	ListServices(ctx context.Context) ([]model.Service, error)
	ListArticles(ctx context.Context) ([]model.Article, error)
	ListAbout(ctx context.Context) ([]model.AboutItem, error)
	ListAdvantages(ctx context.Context) ([]model.Advantage, error)
	ListPartners(ctx context.Context) ([]model.Partner, error)
	LatestHero(ctx context.Context) (*model.HeroSection, error)
}

type OrderLister interface {
	List(ctx context.Context) ([]model.Order, error)
}

// ContentService serves GET /data-manager.
type ContentService struct {
	content ContentStore
	orders  OrderLister
}

func NewContentService(content ContentStore, orders OrderLister) *ContentService {
	return &ContentService{content: content, orders: orders}
}

// Get returns one collection, or the aggregate for ContentAll.
func (s *ContentService) Get(ctx context.Context, req *model.GetContentRequest) (any, error) {
	switch req.Type {
	case model.ContentAll:
		return s.All(ctx)
	case model.ContentServices:
		return nonNil(s.content.ListServices(ctx))
	case model.ContentArticles:
		return nonNil(s.content.ListArticles(ctx))
	case model.ContentAbout:
		return nonNil(s.content.ListAbout(ctx))
	case model.ContentAdvantages:
		return nonNil(s.content.ListAdvantages(ctx))
	case model.ContentPartners:
		return nonNil(s.content.ListPartners(ctx))
	case model.ContentHero:
		hero, err := s.content.LatestHero(ctx)
		if err != nil {
			return nil, err
		}
		return model.HeroOrEmpty(hero), nil
	case model.ContentOrders:
		return nonNil(s.orders.List(ctx))
	default:
		return nil, errs.NewBadRequestError("Invalid type parameter", true, nil, nil)
	}
}

// All reads every collection. Every key of the result is populated even
// when its table is empty.
func (s *ContentService) All(ctx context.Context) (*model.SiteContent, error) {
	var (
		result model.SiteContent
		err    error
	)

	if result.Services, err = nonNil(s.content.ListServices(ctx)); err != nil {
		return nil, err
	}
	if result.Articles, err = nonNil(s.content.ListArticles(ctx)); err != nil {
		return nil, err
	}
	if result.About, err = nonNil(s.content.ListAbout(ctx)); err != nil {
		return nil, err
	}
	if result.Advantages, err = nonNil(s.content.ListAdvantages(ctx)); err != nil {
		return nil, err
	}
	if result.Partners, err = nonNil(s.content.ListPartners(ctx)); err != nil {
		return nil, err
	}

	hero, err := s.content.LatestHero(ctx)
	if err != nil {
		return nil, err
	}
	result.Hero = model.HeroOrEmpty(hero)

	if result.Orders, err = nonNil(s.orders.List(ctx)); err != nil {
		return nil, err
	}

	return &result, nil
}

// Export renders the aggregate as an indented JSON document, the same
// shape GET /data-manager?type=all returns.
func (s *ContentService) Export(ctx context.Context) ([]byte, error) {
	content, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(content, "", "  ")
}

// nonNil passes a store result through, replacing a nil slice with an
// empty one so it serializes as [].
func nonNil[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}
