package service

import (
	"context"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/rs/zerolog"
)

type OrderStore interface {
	Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)
}

// OrderNotifier schedules the owner notification for a new order.
type OrderNotifier interface {
	EnqueueOrderCreated(ctx context.Context, order *model.Order) error
}

type OrderService struct {
	store    OrderStore
	notifier OrderNotifier
}

// NewOrderService builds the service. notifier may be nil, in which case
// no notification is scheduled.
func NewOrderService(store OrderStore, notifier OrderNotifier) *OrderService {
	return &OrderService{store: store, notifier: notifier}
}

// Create stores the order, then schedules the notification. A failure to
// schedule is logged and never fails the order.
func (s *OrderService) Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	order, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueOrderCreated(ctx, order); err != nil {
			zerolog.Ctx(ctx).Error().
				Err(err).
				Int64("order_id", order.ID).
				Msg("failed to enqueue order notification")
		}
	}

	return order, nil
}
