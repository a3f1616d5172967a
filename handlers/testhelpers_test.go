package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"franchise-membership-system/middleware"
	"franchise-membership-system/models"
	"franchise-membership-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSecret = []byte("handler-test-secret")

// newTestApp wires the full route surface against an in-memory database,
// mirroring main.go minus the background workers.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.BusinessDetails{},
		&models.ContactDetails{},
		&models.GainsProfile{},
		&models.Referral{},
		&models.Region{},
		&models.Club{},
		&models.FranchiseAdmin{},
		&models.MemberStats{},
	))

	app := fiber.New()
	session := middleware.SessionMiddleware(db, testSecret)

	SetupAuthRoutes(app, services.NewAuthService(db, testSecret), session)
	SetupReferralRoutes(app, services.NewReferralService(db), session)
	SetupProfileRoutes(app, services.NewProfileService(db), session)
	SetupMembershipRoutes(app, services.NewMembershipService(db), session)
	SetupFranchiseRoutes(app, services.NewFranchiseService(db), session)

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, firstname string, homeClub *string) *models.User {
	t.Helper()

	user := &models.User{
		Firstname:      firstname,
		Lastname:       "Tester",
		Email:          fmt.Sprintf("%s-%s@example.com", strings.ToLower(firstname), strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-"))),
		Phone:          "555-0100",
		Password:       "$2a$10$notarealhashnotarealhashnotarealhash12",
		MembershipType: models.MembershipFree,
		HomeClub:       homeClub,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mintToken(t *testing.T, userID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func strPtr(s string) *string { return &s }
