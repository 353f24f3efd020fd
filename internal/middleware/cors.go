package middleware

import (
	"inventory/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// PreflightMaxAge is how long, in seconds, browsers may cache a preflight.
const PreflightMaxAge = 3600

// CORS answers preflight requests for any origin and stamps the fixed CORS
// headers on every other response, including ones produced by handlers that
// never reach the envelope helpers.
func CORS() fiber.Handler {
	preflight := cors.New(cors.Config{
		AllowOrigins: response.AllowOrigin,
		AllowMethods: response.AllowMethods,
		AllowHeaders: response.AllowHeaders,
		MaxAge:       PreflightMaxAge,
	})

	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			err := preflight(c)
			// The cors middleware strips the spaces from its lists; restore the
			// format every other response uses.
			response.SetHeaders(c)
			return err
		}
		response.SetHeaders(c)
		return c.Next()
	}
}
