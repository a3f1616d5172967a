package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "",
		`{"firstname":"Maya","lastname":"Iyer","email":"maya@example.com","password":"long-enough-pass"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "FREE", data["membershipType"])
	assert.NotContains(t, data, "password")

	// Duplicate registration conflicts.
	resp, _ = doJSON(t, app, "POST", "/api/auth/register", "",
		`{"firstname":"Maya","lastname":"Iyer","email":"maya@example.com","password":"long-enough-pass"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/auth/login", "",
		`{"email":"maya@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", "/api/auth/login", "",
		`{"email":"maya@example.com","password":"long-enough-pass"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	resp, body = doJSON(t, app, "GET", "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := body["data"].(map[string]interface{})
	assert.Equal(t, "maya@example.com", me["email"])
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/auth/register", "",
		`{"firstname":"No","lastname":"Email","password":"long-enough-pass"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid JSON", body["error"])
}

func TestMeRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
}
