package model

import (
	"encoding/json"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/shopspring/decimal"
)

const DefaultOrderStatus = "new"

type Order struct {
	Base
	Items             json.RawMessage `db:"items" json:"items"`
	Total             decimal.Decimal `db:"total" json:"total"`
	CustomerFirstName *string         `db:"customer_first_name" json:"customer_first_name"`
	CustomerLastName  *string         `db:"customer_last_name" json:"customer_last_name"`
	CustomerPhone     *string         `db:"customer_phone" json:"customer_phone"`
	CustomerEmail     *string         `db:"customer_email" json:"customer_email"`
	CustomerAddress   *string         `db:"customer_address" json:"customer_address"`
	CustomerComment   *string         `db:"customer_comment" json:"customer_comment"`
	Status            string          `db:"status" json:"status"`
}

type Customer struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	Comment   *string `json:"comment"`
}

// CreateOrderRequest is the body of POST /data-manager?type=order.
type CreateOrderRequest struct {
	Items    json.RawMessage  `json:"items"`
	Total    *decimal.Decimal `json:"total"`
	Customer Customer         `json:"customer"`
	Status   string           `json:"status"`
}

// Validate fills defaults: an empty item list, a zero total and status "new".
func (r *CreateOrderRequest) Validate() error {
	if len(r.Items) == 0 || string(r.Items) == "null" {
		r.Items = json.RawMessage("[]")
	}
	if !json.Valid(r.Items) || r.Items[0] != '[' {
		return errs.NewBadRequestError("Validation failed", true, nil,
			[]errs.FieldError{{Field: "items", Error: "must be a list"}})
	}

	if r.Total == nil {
		zero := decimal.Zero
		r.Total = &zero
	}

	r.Status = trim(r.Status)
	if r.Status == "" {
		r.Status = DefaultOrderStatus
	}

	c := &r.Customer
	c.FirstName = trimPtr(c.FirstName)
	c.LastName = trimPtr(c.LastName)
	c.Phone = trimPtr(c.Phone)
	c.Email = trimPtr(c.Email)
	c.Address = trimPtr(c.Address)
	c.Comment = trimPtr(c.Comment)

	return nil
}

// ItemsArg is the bind value for the items column.
func (r *CreateOrderRequest) ItemsArg() any {
	return jsonArg(r.Items)
}
