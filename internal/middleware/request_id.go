package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const CtxRequestID = "request_id"

func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals(CtxRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

func GetRequestID(c *fiber.Ctx) string {
	reqID, _ := c.Locals(CtxRequestID).(string)
	return reqID
}

// ClientIP returns the request origin address, "unknown" when absent.
// Audit entries record it best-effort.
func ClientIP(c *fiber.Ctx) string {
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}

// ClientUserAgent returns the User-Agent header, "unknown" when absent.
func ClientUserAgent(c *fiber.Ctx) string {
	if ua := c.Get("User-Agent"); ua != "" {
		return ua
	}
	return "unknown"
}
