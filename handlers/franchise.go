package handlers

import (
	"franchise-membership-system/middleware"
	"franchise-membership-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupFranchiseRoutes wires the admin hierarchy endpoints. Role checks
// live in the service; every route still requires a session.
func SetupFranchiseRoutes(app *fiber.App, svc *services.FranchiseService, session fiber.Handler) {
	group := app.Group("/api/franchise", session)

	group.Post("/regions", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.CreateRegionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		region, err := svc.CreateRegion(c.Context(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    region,
		})
	})

	group.Get("/regions", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		regions, err := svc.ListRegions(c.Context(), sess)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    regions,
		})
	})

	group.Post("/clubs", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.CreateClubRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		club, err := svc.CreateClub(c.Context(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    club,
		})
	})

	group.Post("/regional-admins", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.AppointAdminRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		appointment, err := svc.AppointRegionalAdmin(c.Context(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    appointment,
		})
	})

	group.Post("/franchise-admins", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.AppointAdminRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		appointment, err := svc.AppointFranchiseAdmin(c.Context(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    appointment,
		})
	})

	group.Get("/overview", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		overview, err := svc.Overview(c.Context(), sess)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    overview,
		})
	})
}
