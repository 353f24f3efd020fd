package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/models"
	"inventory/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProductEvent(ctx context.Context, event models.ProductEvent) error {
	args := m.Called(event.Type, event.ProductID)
	return args.Error(0)
}

func newApp(t *testing.T, publisher *MockPublisher) (*fiber.App, *test.Hook) {
	t.Helper()

	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, cfg))

	log, hook := test.NewNullLogger()
	deps := server.Dependencies{DB: db, Log: log}
	if publisher != nil {
		deps.Publisher = publisher
	}
	return server.NewApp(deps), hook
}

func send(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	resp, err := app.Test(httptest.NewRequest(method, target, reader), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestMutationsPublishEvents(t *testing.T) {
	publisher := new(MockPublisher)
	app, _ := newApp(t, publisher)

	publisher.On("PublishProductEvent", models.EventProductCreated, uint(1)).Return(nil).Once()
	publisher.On("PublishProductEvent", models.EventProductUpdated, uint(1)).Return(nil).Once()
	publisher.On("PublishProductEvent", models.EventProductDeleted, uint(1)).Return(nil).Once()

	resp, _ := send(t, app, http.MethodPost, "/products/create",
		`{"name":"Widget","description":"A widget","category":"Tools","quantity":"10","price":"9.99"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = send(t, app, http.MethodPut, "/products/update", `{"id":1,"quantity":"11"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = send(t, app, http.MethodDelete, "/products/delete", `{"id":"1"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	publisher.AssertExpectations(t)
}

func TestFailedMutationsDoNotPublish(t *testing.T) {
	publisher := new(MockPublisher)
	app, _ := newApp(t, publisher)

	resp, _ := send(t, app, http.MethodPost, "/products/delete", `{"id":77}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	publisher.AssertNotCalled(t, "PublishProductEvent", mock.Anything, mock.Anything)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	app, _ := newApp(t, nil)

	resp, env := send(t, app, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "error", env["status"])
	assert.NotEmpty(t, env["message"])
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestsAreLogged(t *testing.T) {
	app, hook := newApp(t, nil)

	resp, _ := send(t, app, http.MethodGet, "/products/read", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	var entry *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "request" {
			entry = e
		}
	}
	require.NotNil(t, entry)
	assert.Equal(t, "/products/read", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, resp.Header.Get(fiber.HeaderXRequestID), entry.Data["request_id"])
}
