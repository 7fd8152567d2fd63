package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

// OriginRejectedMessage is the plain-text body of a rejected cross-origin request.
const OriginRejectedMessage = "CORS Error"

// AllowOrigin returns the origin predicate for a single allowed origin.
// Requests without an Origin header are not cross-origin and always pass; with
// an empty allowed value every cross-origin request is rejected.
func AllowOrigin(allowed string) func(origin string) bool {
	return func(origin string) bool {
		if origin == "" {
			return true
		}
		return allowed != "" && origin == allowed
	}
}

// OriginGate rejects requests whose Origin header fails allow with 403 and a
// plain-text body.
func OriginGate(allow func(origin string) bool, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if allow(origin) {
			return c.Next()
		}
		log.WithFields(logrus.Fields{
			"origin": origin,
			"path":   c.Path(),
		}).Warn("Rejected cross-origin request")
		return c.Status(fiber.StatusForbidden).SendString(OriginRejectedMessage)
	}
}

// CORS emits the CORS response headers for allowed. It must sit after
// OriginGate, which already dropped every other origin.
func CORS(allowed string) fiber.Handler {
	if allowed == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return cors.New(cors.Config{
		AllowOrigins: allowed,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}
