package handlers

import (
	"franchise-membership-system/middleware"
	"franchise-membership-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMembershipRoutes(app *fiber.App, svc *services.MembershipService, session fiber.Handler) {
	group := app.Group("/api/membership", session)

	group.Post("/upgrade", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.UpgradeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		user, err := svc.Upgrade(c.Context(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    user,
		})
	})
}
