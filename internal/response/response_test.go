package response_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, handler fiber.Handler) (*http.Response, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body
}

func assertCORS(t *testing.T, resp *http.Response) {
	t.Helper()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, response.AllowMethods, resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, response.AllowHeaders, resp.Header.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "application/json; charset=UTF-8", resp.Header.Get("Content-Type"))
}

func TestSuccessWithData(t *testing.T) {
	resp, body := call(t, func(c *fiber.Ctx) error {
		return response.Success(c, "Product found.", fiber.Map{"id": 7})
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assertCORS(t, resp)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Product found.", body["message"])
	assert.Equal(t, map[string]interface{}{"id": float64(7)}, body["data"])
}

func TestSuccessWithoutDataOmitsKey(t *testing.T) {
	_, body := call(t, func(c *fiber.Ctx) error {
		return response.Success(c, "Product was deleted successfully.", nil)
	})

	assert.Equal(t, "success", body["status"])
	assert.NotContains(t, body, "data")
}

func TestSuccessWithEmptyList(t *testing.T) {
	_, body := call(t, func(c *fiber.Ctx) error {
		return response.Success(c, "No products found.", []string{})
	})

	assert.Equal(t, []interface{}{}, body["data"])
}

func TestSuccessWithStatus(t *testing.T) {
	resp, _ := call(t, func(c *fiber.Ctx) error {
		return response.SuccessWithStatus(c, fiber.StatusCreated, "created", nil)
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestError(t *testing.T) {
	resp, body := call(t, func(c *fiber.Ctx) error {
		return response.Error(c, fiber.StatusNotFound, "Product not found.")
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertCORS(t, resp)
	assert.Equal(t, map[string]interface{}{"status": "error", "message": "Product not found."}, body)
}
