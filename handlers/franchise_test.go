package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"franchise-membership-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFranchiseRegionRoutes(t *testing.T) {
	app, db := newTestApp(t)
	super := seedUser(t, db, "Super", nil)
	member := seedUser(t, db, "Member", nil)
	require.NoError(t, db.Create(&models.FranchiseAdmin{UserID: super.ID, Role: models.RoleSuper}).Error)

	resp, _ := doJSON(t, app, "POST", "/api/franchise/regions", mintToken(t, member.ID),
		`{"name":"north"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/franchise/regions", mintToken(t, super.ID),
		`{"name":"north"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	region := body["data"].(map[string]interface{})
	assert.Equal(t, "North", region["displayName"])
	regionID := region["id"].(string)

	resp, body = doJSON(t, app, "POST", "/api/franchise/clubs", mintToken(t, super.ID),
		fmt.Sprintf(`{"name":"Lakeside Club","regionId":%q}`, regionID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	club := body["data"].(map[string]interface{})
	assert.Equal(t, "lakeside-club", club["slug"])

	resp, body = doJSON(t, app, "GET", "/api/franchise/overview", mintToken(t, super.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	overview := body["data"].([]interface{})
	require.Len(t, overview, 1)
	row := overview[0].(map[string]interface{})
	assert.EqualValues(t, 1, row["clubCount"])
}

func TestAppointAdminsViaRoutes(t *testing.T) {
	app, db := newTestApp(t)
	super := seedUser(t, db, "Super", nil)
	target := seedUser(t, db, "Target", nil)
	require.NoError(t, db.Create(&models.FranchiseAdmin{UserID: super.ID, Role: models.RoleSuper}).Error)

	resp, body := doJSON(t, app, "POST", "/api/franchise/regions", mintToken(t, super.ID), `{"name":"east"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	regionID := body["data"].(map[string]interface{})["id"].(string)

	resp, body = doJSON(t, app, "POST", "/api/franchise/regional-admins", mintToken(t, super.ID),
		fmt.Sprintf(`{"userId":%q,"regionId":%q}`, target.ID, regionID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	appointment := body["data"].(map[string]interface{})
	assert.Equal(t, "REGIONAL", appointment["role"])

	// Appointing an unknown user 404s.
	resp, _ = doJSON(t, app, "POST", "/api/franchise/regional-admins", mintToken(t, super.ID),
		fmt.Sprintf(`{"userId":"ghost","regionId":%q}`, regionID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
