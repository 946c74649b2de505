package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentbite/backend/internal/models"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/register", map[string]string{
		"username": "alex",
		"email":    "alex@example.com",
		"password": "pass123",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotZero(t, body["user_id"])
}

func TestRegisterEndpointValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []map[string]string{
		{"email": "alex@example.com", "password": "pass123"},
		{"username": "alex", "password": "pass123"},
		{"username": "alex", "email": "not-an-email", "password": "pass123"},
		{"username": "alex", "email": "alex@example.com"},
	}
	for _, payload := range cases {
		rec := env.request(t, http.MethodPost, "/api/register", payload, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload %v", payload)
	}
}

func TestRegisterEndpointConflict(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"username": "alex",
		"email":    "alex@example.com",
		"password": "pass123",
	}
	rec := env.request(t, http.MethodPost, "/api/register", payload, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/register", payload, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/register", map[string]string{
		"username": "alex",
		"email":    "alex@example.com",
		"password": "pass123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/login", map[string]string{
		"username": "alex",
		"password": "pass123",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alex", user["name"])
	assert.Equal(t, models.RoleStudent, user["role"])
}

func TestLoginEndpointRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/register", map[string]string{
		"username": "alex",
		"email":    "alex@example.com",
		"password": "pass123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/login", map[string]string{
		"username": "alex",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin", models.RoleAdmin, 0)

	rec := env.request(t, http.MethodPost, "/api/login", map[string]string{
		"username": "admin",
		"password": "admin@1234",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Admin login successful", body["message"])
}

func TestAdminLoginEndpointWithoutSeededRow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/login", map[string]string{
		"username": "admin",
		"password": "admin@1234",
	}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
