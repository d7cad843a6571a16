package job

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskOrderCreated is the task type stored in Redis.
	TaskOrderCreated = "order:created"
)

// OrderCreatedPayload is the JSON payload of TaskOrderCreated. It is a
// snapshot of the order, the worker never reads the database.
type OrderCreatedPayload struct {
	OrderID       int64  `json:"order_id"`
	Total         string `json:"total"`
	ItemCount     int    `json:"item_count"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Address       string `json:"address"`
	Comment       string `json:"comment"`
	Status        string `json:"status"`
}

// NewOrderCreatedPayload snapshots a stored order.
func NewOrderCreatedPayload(order *model.Order) OrderCreatedPayload {
	var items []json.RawMessage
	// CreateOrderRequest.Validate only admits a JSON array, so this cannot fail
	// for a stored order.
	_ = json.Unmarshal(order.Items, &items)

	name := strings.TrimSpace(deref(order.CustomerFirstName) + " " + deref(order.CustomerLastName))

	return OrderCreatedPayload{
		OrderID:       order.ID,
		Total:         order.Total.StringFixed(2),
		ItemCount:     len(items),
		CustomerName:  name,
		CustomerPhone: deref(order.CustomerPhone),
		CustomerEmail: deref(order.CustomerEmail),
		Address:       deref(order.CustomerAddress),
		Comment:       deref(order.CustomerComment),
		Status:        order.Status,
	}
}

// NewOrderCreatedTask builds the notification task: up to 3 retries on
// the critical queue, 30s per attempt.
func NewOrderCreatedTask(p OrderCreatedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskOrderCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
