package middleware

import (
	"errors"
	"strings"

	"franchise-membership-system/models"
	"franchise-membership-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// SessionMiddleware resolves the bearer token into a session. The user row
// is reloaded from the database so tier and home-club changes take effect
// without reissuing the token.
func SessionMiddleware(db *gorm.DB, jwtSecret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return unauthorized(c)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c)
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			return unauthorized(c)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c)
		}
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			return unauthorized(c)
		}

		var user models.User
		if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
			return unauthorized(c)
		}

		homeClub := ""
		if user.HomeClub != nil {
			homeClub = *user.HomeClub
		}
		c.Locals("session", services.Session{
			UserID:         user.ID,
			MembershipType: user.MembershipType,
			HomeClub:       homeClub,
		})
		c.Locals("user", user)

		return c.Next()
	}
}

// SessionFromCtx returns the session set by SessionMiddleware, or the zero
// session when the route was reached without one.
func SessionFromCtx(c *fiber.Ctx) services.Session {
	if sess, ok := c.Locals("session").(services.Session); ok {
		return sess
	}
	return services.Session{}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
