package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewOrderCreatedPayload(t *testing.T) {
	order := &model.Order{
		Base:              model.Base{ID: 9},
		Items:             json.RawMessage(`[{"sku":"a"},{"sku":"b"}]`),
		Total:             decimal.RequireFromString("19.9"),
		CustomerFirstName: strPtr("Ann"),
		CustomerPhone:     strPtr("+1 555 0100"),
		Status:            model.DefaultOrderStatus,
	}

	p := NewOrderCreatedPayload(order)

	assert.Equal(t, int64(9), p.OrderID)
	assert.Equal(t, "19.90", p.Total)
	assert.Equal(t, 2, p.ItemCount)
	assert.Equal(t, "Ann", p.CustomerName)
	assert.Equal(t, "+1 555 0100", p.CustomerPhone)
	assert.Empty(t, p.CustomerEmail)
	assert.Equal(t, "new", p.Status)
}

func TestNewOrderCreatedTask(t *testing.T) {
	task, err := NewOrderCreatedTask(OrderCreatedPayload{OrderID: 3, Total: "0.00"})
	require.NoError(t, err)

	assert.Equal(t, TaskOrderCreated, task.Type())

	var decoded OrderCreatedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, int64(3), decoded.OrderID)
}

func TestHandleOrderCreatedTask_BadPayloadIsNotRetried(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}

	err := j.handleOrderCreatedTask(context.Background(), asynq.NewTask(TaskOrderCreated, []byte("{")))

	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
