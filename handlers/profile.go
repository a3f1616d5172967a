package handlers

import (
	"path/filepath"
	"strings"

	"franchise-membership-system/middleware"
	"franchise-membership-system/services"
	"franchise-membership-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxProfileImageSize = 10 * 1024 * 1024 // 10MB

func SetupProfileRoutes(app *fiber.App, svc *services.ProfileService, session fiber.Handler) {
	group := app.Group("/api/user", session)

	group.Get("/profile", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		user, err := svc.GetProfile(c.Context(), sess)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    user,
		})
	})

	group.Put("/profile/personal-details", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.PersonalDetailsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		user, err := svc.UpdatePersonalDetails(c.Context(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    user,
		})
	})

	group.Put("/profile/business-details", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.BusinessDetailsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		details, err := svc.UpsertBusinessDetails(c.Context(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    details,
		})
	})

	group.Put("/profile/contact-details", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.ContactDetailsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		details, err := svc.UpsertContactDetails(c.Context(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    details,
		})
	})

	group.Post("/profile/image", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
		}
		if fileHeader.Size > maxProfileImageSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image too large (max 10MB)"})
		}
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		switch ext {
		case ".jpg", ".jpeg", ".png", ".webp":
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported image type"})
		}

		key := "profiles/" + uuid.NewString() + ext
		url, err := utils.StoreProfileImage(fileHeader, key)
		if err != nil {
			return respondError(c, err)
		}

		if err := svc.UpdateProfileImage(c.Context(), sess, url); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    fiber.Map{"profileImage": url},
		})
	})

	group.Get("/stats", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		stats, err := svc.GetStats(c.Context(), sess)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    stats,
		})
	})

	group.Get("/:id/bios/gains-profile", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		data, err := svc.GetGainsProfile(c.Context(), sess, c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    data,
		})
	})

	group.Post("/:id/bios/gains-profile", func(c *fiber.Ctx) error {
		sess := middleware.SessionFromCtx(c)

		var req services.GainsProfileData
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		data, err := svc.UpsertGainsProfile(c.Context(), sess, c.Params("id"), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    data,
		})
	})
}
