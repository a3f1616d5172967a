package handlers

import (
	"franchise-membership-system/middleware"
	"franchise-membership-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupReferralRoutes wires the referral endpoints. Listing received
// referrals answers 201 on success — non-standard for a read, but preserved
// as documented wire behavior. The endpoints added later (sent, updates)
// use conventional codes.
func SetupReferralRoutes(app *fiber.App, svc *services.ReferralService, session fiber.Handler) {
	group := app.Group("/api/vip/referral", session)

	group.Get("/", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		referrals, err := svc.ListReceived(c.Context(), sess)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    referrals,
		})
	})

	group.Post("/", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.CreateReferralRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		referral, err := svc.Create(c.Context(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    referral,
		})
	})

	group.Get("/sent", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		referrals, err := svc.ListSent(c.Context(), sess)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    referrals,
		})
	})

	group.Post("/:id/updates", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.AppendUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		referral, err := svc.AppendUpdate(c.Context(), sess, c.Params("id"), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    referral,
		})
	})
}
