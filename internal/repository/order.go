package repository

import (
	"context"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const orderColumns = `id, items, total, customer_first_name, customer_last_name, customer_phone,
	customer_email, customer_address, customer_comment, status, created_at, updated_at`

type OrderRepository struct {
	db database.DBTX
}

func NewOrderRepository(db database.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	orders, err := listRows[model.Order](ctx, r.db,
		"SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC, id DESC")
	return orders, errors.Wrap(err, "failed to list orders")
}

func (r *OrderRepository) Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	c := req.Customer
	rows, err := r.db.Query(ctx, `
		INSERT INTO orders (items, total, customer_first_name, customer_last_name, customer_phone,
			customer_email, customer_address, customer_comment, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+orderColumns,
		req.ItemsArg(), *req.Total, c.FirstName, c.LastName, c.Phone, c.Email, c.Address, c.Comment, req.Status,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	order, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Order])
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	return order, nil
}
