package response

import "github.com/gofiber/fiber/v2"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// CORS headers written on every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, PUT, DELETE"
	AllowHeaders = "Content-Type, Access-Control-Allow-Headers, Authorization, X-Requested-With"
)

const contentType = "application/json; charset=UTF-8"

// Envelope is the uniform body of every response. Data is left out entirely
// when nil.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 success envelope.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SuccessWithStatus writes a success envelope with an explicit status code.
func SuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Error writes an error envelope.
func Error(c *fiber.Ctx, status int, message string) error {
	return write(c, status, Envelope{Status: StatusError, Message: message})
}

func write(c *fiber.Ctx, status int, body Envelope) error {
	SetHeaders(c)
	if err := c.Status(status).JSON(body); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, contentType)
	return nil
}

// SetHeaders sets the fixed CORS headers on the response.
func SetHeaders(c *fiber.Ctx) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, AllowOrigin)
	c.Set(fiber.HeaderAccessControlAllowMethods, AllowMethods)
	c.Set(fiber.HeaderAccessControlAllowHeaders, AllowHeaders)
}
