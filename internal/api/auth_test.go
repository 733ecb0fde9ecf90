package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	router, _ := setupTestRouter(t)

	token := registerTestUser(t, router, "cook@example.com")
	require.NotEmpty(t, token)

	w := doJSON(t, router, "POST", "/api/v1/auth/login", "", LoginRequest{
		Email:    "cook@example.com",
		Password: "password123",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := setupTestRouter(t)
	registerTestUser(t, router, "cook@example.com")

	w := doJSON(t, router, "POST", "/api/v1/auth/register", "", RegisterRequest{
		Name:     "Other User",
		Email:    "cook@example.com",
		Password: "password123",
	})
	assert.Equal(t, 409, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := setupTestRouter(t)
	registerTestUser(t, router, "cook@example.com")

	w := doJSON(t, router, "POST", "/api/v1/auth/login", "", LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, 401, w.Code)
}

func TestLoginValidationErrors(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, 400, w.Code)
}
