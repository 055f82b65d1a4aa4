package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aamit98/Reelhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func TestUserRegister(t *testing.T) {
	a := newTestAPI(t)

	w := jsonRequest(a, http.MethodPost, "/api/users", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.User.ID)
	assert.NotEmpty(t, resp.User.Avatar)

	// The token must be usable right away
	w = jsonRequest(a, http.MethodGet, "/api/users/me", resp.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Hashes never leave the server
	assert.NotContains(t, w.Body.String(), "argon2id")
}

func TestUserRegisterValidation(t *testing.T) {
	a := newTestAPI(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"short username", map[string]string{"username": "ab", "email": "a@b.com", "password": "password123"}},
		{"bad email", map[string]string{"username": "alice", "email": "not-an-email", "password": "password123"}},
		{"short password", map[string]string{"username": "alice", "email": "a@b.com", "password": "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := jsonRequest(a, http.MethodPost, "/api/users", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUserRegisterDuplicate(t *testing.T) {
	a := newTestAPI(t)
	createTestUser(t, a, "dupe")

	w := jsonRequest(a, http.MethodPost, "/api/users", "", map[string]string{
		"username": "user_dupe",
		"email":    "fresh@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = jsonRequest(a, http.MethodPost, "/api/users", "", map[string]string{
		"username": "freshname",
		"email":    "dupe@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserLogin(t *testing.T) {
	a := newTestAPI(t)
	user, _ := createTestUser(t, a, "bob")

	w := jsonRequest(a, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    user.Email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestUserLoginRejectsBadCredentials(t *testing.T) {
	a := newTestAPI(t)
	user, _ := createTestUser(t, a, "carol")

	w := jsonRequest(a, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    user.Email,
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown accounts get the same answer as bad passwords
	w = jsonRequest(a, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	a := newTestAPI(t)
	_, token := createTestUser(t, a, "dave")

	w := jsonRequest(a, http.MethodHead, "/api/validate", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = jsonRequest(a, http.MethodHead, "/api/validate", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
