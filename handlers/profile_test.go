package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGainsProfileRoundTrip(t *testing.T) {
	app, db := newTestApp(t)
	owner := seedUser(t, db, "Owner", nil)
	reader := seedUser(t, db, "Reader", nil)

	path := fmt.Sprintf("/api/user/%s/bios/gains-profile", owner.ID)

	// Unset profile reads as empty lists.
	resp, body := doJSON(t, app, "GET", path, mintToken(t, reader.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	for _, key := range []string{"goals", "accomplishments", "interests", "networks", "skills"} {
		list, ok := data[key].([]interface{})
		require.True(t, ok, key)
		assert.Empty(t, list, key)
	}

	// Only the owner may write.
	resp, _ = doJSON(t, app, "POST", path, mintToken(t, reader.ID), `{"goals":["intrude"]}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", path, mintToken(t, owner.ID),
		`{"goals":["grow revenue"],"skills":["sales"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"grow revenue"}, data["goals"])
	assert.Equal(t, []interface{}{"sales"}, data["skills"])
	assert.Equal(t, []interface{}{}, data["networks"])
}

func TestPersonalDetailsUpdate(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "Before", nil)

	resp, body := doJSON(t, app, "PUT", "/api/user/profile/personal-details", mintToken(t, user.ID),
		`{"firstname":"After","lastname":"Change","phone":"555-0123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "After", data["firstname"])

	resp, _ = doJSON(t, app, "PUT", "/api/user/profile/personal-details", mintToken(t, user.ID),
		`{"lastname":"MissingFirst"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMembershipUpgradeRoute(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "Member", nil)
	token := mintToken(t, user.ID)

	resp, body := doJSON(t, app, "POST", "/api/membership/upgrade", token, `{"tier":"GOLD"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "GOLD", data["membershipType"])
	assert.NotNil(t, data["membershipExpiresAt"])

	// Same tier again is no longer an upgrade.
	resp, body = doJSON(t, app, "POST", "/api/membership/upgrade", token, `{"tier":"GOLD"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "requested tier is not an upgrade", body["error"])
}

func TestStatsRoute(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "Stats", nil)

	resp, body := doJSON(t, app, "GET", "/api/user/stats", mintToken(t, user.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 0, data["referralsSent"])
	assert.EqualValues(t, 0, data["referralsReceived"])
}
