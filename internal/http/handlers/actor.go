package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/staffdesk/backend/internal/audit"
	"github.com/staffdesk/backend/internal/middleware"
)

// requestActor builds the audit actor from the authenticated request.
func requestActor(c *fiber.Ctx) audit.Actor {
	return audit.Actor{
		ID:        middleware.GetUserID(c).String(),
		Name:      middleware.GetUserName(c),
		IPAddress: middleware.ClientIP(c),
		UserAgent: middleware.ClientUserAgent(c),
	}
}
