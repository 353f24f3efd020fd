package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// envelope mirrors the JSON body every endpoint returns.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupApp builds the app over a fresh in-memory SQLite database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, cfg))

	log := logrus.New()
	log.SetOutput(io.Discard)

	return server.NewApp(server.Dependencies{DB: db, Log: log}), db
}

// do sends a request with an optional JSON body and decodes the envelope.
func do(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

// createProduct creates a product and returns its id.
func createProduct(t *testing.T, app *fiber.App, body map[string]interface{}) uint {
	t.Helper()

	resp, env := do(t, app, http.MethodPost, "/products/create", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	var data struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}

func widget() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Widget",
		"description": "A widget",
		"category":    "Tools",
		"quantity":    "10",
		"price":       "9.99",
	}
}
