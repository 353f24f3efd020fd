package rabbitmq_test

import (
	"errors"
	"testing"
	"time"

	"inventory/internal/models"
	"inventory/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAndDispatch(t *testing.T) {
	event := models.ProductEvent{
		Type:       models.EventProductUpdated,
		ProductID:  5,
		Columns:    []string{"price"},
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	body, err := rabbitmq.EncodeEvent(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"product.updated","product_id":5,"columns":["price"],"occurred_at":"2024-01-02T03:04:05Z"}`, string(body))

	var got models.ProductEvent
	err = rabbitmq.Dispatch(body, func(e models.ProductEvent) error {
		got = e
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, event, got)
}

func TestDispatchErrors(t *testing.T) {
	noop := func(models.ProductEvent) error { return nil }

	assert.ErrorContains(t, rabbitmq.Dispatch([]byte("not json"), noop), "failed to decode")
	assert.ErrorContains(t, rabbitmq.Dispatch([]byte(`{"product_id":1}`), noop), "no type")

	handlerErr := errors.New("handler failed")
	err := rabbitmq.Dispatch([]byte(`{"type":"product.deleted","product_id":1}`), func(models.ProductEvent) error {
		return handlerErr
	})
	assert.ErrorIs(t, err, handlerErr)
}

func TestAuditHandlerLogsEvent(t *testing.T) {
	log, hook := test.NewNullLogger()

	err := rabbitmq.AuditHandler(log)(models.ProductEvent{Type: models.EventProductCreated, ProductID: 9})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "product.created", entry.Data["event"])
	assert.Equal(t, uint(9), entry.Data["product_id"])
}
