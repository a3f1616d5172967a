package handlers

import (
	"franchise-membership-system/middleware"
	"franchise-membership-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, svc *services.AuthService, session fiber.Handler) {
	group := app.Group("/api/auth")

	group.Post("/register", func(c *fiber.Ctx) error {
		var req services.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		user, err := svc.Register(c.Context(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"data":    user,
		})
	})

	group.Post("/login", func(c *fiber.Ctx) error {
		var req services.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		result, err := svc.Login(c.Context(), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"token":   result.Token,
			"user":    result.User,
		})
	})

	group.Get("/me", session, func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		user, err := svc.Me(c.Context(), sess)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    user,
		})
	})
}
