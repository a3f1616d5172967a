package services

import (
	"fmt"
	"strings"
	"testing"

	"franchise-membership-system/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory sqlite database with the
// full schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// seedUser creates a member with sensible defaults.
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

func strPtr(s string) *string { return &s }
