// utils/params.go - Shared request parsing helpers
package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ParamUint parses a route parameter as an unsigned id.
func ParamUint(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Params(key)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return uint(v), nil
}

// QueryInt returns a query parameter as int, falling back to def.
func QueryInt(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return def
}
