// Package docs serves the OpenAPI description of the product API.
package docs

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed openapi.json
var openAPI []byte

// RegisterRoutes mounts GET /docs.
func RegisterRoutes(router fiber.Router) {
	router.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Send(openAPI)
	})
}
