package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const inputKey = "validation.input"

// MsgInvalidBody is reported when a JSON body is not an object.
const MsgInvalidBody = "Cuerpo de la solicitud no válido."

// Chain returns a handler that evaluates rules and either stops the request
// with 400 {"errors": [...]} or stores the input for the next handler.
func Chain(rules ...Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []Violation{{Type: "body", Msg: MsgInvalidBody, Location: LocationBody}},
			})
		}

		res := Validate(Input{Params: c.AllParams(), Body: body}, rules...)
		if !res.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": res.Violations,
			})
		}

		c.Locals(inputKey, res.Input)
		return c.Next()
	}
}

// InputFrom returns the input stored by Chain, or an empty input when the
// route has no rules.
func InputFrom(c *fiber.Ctx) Input {
	if in, ok := c.Locals(inputKey).(Input); ok {
		return in
	}
	return Input{Params: c.AllParams(), Body: map[string]any{}}
}

// parseBody decodes a JSON object body. Bodies without a JSON content type
// are treated as empty.
func parseBody(c *fiber.Ctx) (map[string]any, error) {
	raw := bytes.TrimSpace(c.Body())
	if len(raw) == 0 || !c.Is("json") {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode request body: %w", err)
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}
