package services

import (
	"context"
	"testing"

	"franchise-membership-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGainsProfileDefaultsToEmptyLists(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)
	user := seedUser(t, db, "Reader", nil)
	target := seedUser(t, db, "Target", nil)

	data, err := svc.GetGainsProfile(context.Background(), Session{UserID: user.ID}, target.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{}, data.Goals)
	assert.Equal(t, []string{}, data.Accomplishments)
	assert.Equal(t, []string{}, data.Interests)
	assert.Equal(t, []string{}, data.Networks)
	assert.Equal(t, []string{}, data.Skills)
}

func TestUpsertGainsProfileOwnerOnly(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)
	owner := seedUser(t, db, "Owner", nil)
	other := seedUser(t, db, "Other", nil)

	payload := GainsProfileData{Goals: []string{"grow the club"}}

	_, err := svc.UpsertGainsProfile(context.Background(), Session{UserID: other.ID}, owner.ID, payload)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.UpsertGainsProfile(context.Background(), Session{UserID: owner.ID}, owner.ID, payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"grow the club"}, got.Goals)
	assert.Equal(t, []string{}, got.Skills)

	// Second write replaces, not appends.
	got, err = svc.UpsertGainsProfile(context.Background(), Session{UserID: owner.ID}, owner.ID,
		GainsProfileData{Skills: []string{"public speaking", "networking"}})
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Goals)
	assert.Equal(t, []string{"public speaking", "networking"}, got.Skills)
}

func TestUpdatePersonalDetails(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)
	user := seedUser(t, db, "Old", nil)

	got, err := svc.UpdatePersonalDetails(context.Background(), Session{UserID: user.ID},
		PersonalDetailsRequest{Firstname: "New", Lastname: "Name", Phone: "555-0199"})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Firstname)
	assert.Equal(t, "Name", got.Lastname)
	assert.Equal(t, "555-0199", got.Phone)
}

func TestUpsertBusinessDetailsTwiceKeepsOneRow(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)
	user := seedUser(t, db, "Biz", nil)
	sess := Session{UserID: user.ID}

	_, err := svc.UpsertBusinessDetails(context.Background(), sess,
		BusinessDetailsRequest{CompanyName: "Acme Ltd"})
	require.NoError(t, err)
	_, err = svc.UpsertBusinessDetails(context.Background(), sess,
		BusinessDetailsRequest{CompanyName: "Acme Holdings", Industry: "Logistics"})
	require.NoError(t, err)

	var rows []models.BusinessDetails
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Holdings", rows[0].CompanyName)
	assert.Equal(t, "Logistics", rows[0].Industry)
}

func TestGetStatsMissingRowReadsZero(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)
	user := seedUser(t, db, "Fresh", nil)

	stats, err := svc.GetStats(context.Background(), Session{UserID: user.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.ReferralsSent)
	assert.EqualValues(t, 0, stats.ReferralsReceived)
}
