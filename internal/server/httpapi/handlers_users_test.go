package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	rec := doRequest(t, h, http.MethodPost, "/api/users",
		`{"email":"Walt@Example.com","password":"123456"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	user := decodeBody[userResponse](t, rec)
	assert.Equal(t, "walt@example.com", user.Email)
	assert.False(t, user.IsChirpyRed)
	assert.NotZero(t, user.ID)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	registerUser(t, h, "walt@example.com", "123456")

	rec := doRequest(t, h, http.MethodPost, "/api/users",
		`{"email":"walt@example.com","password":"other"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateUser_BadJSON(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	rec := doRequest(t, h, http.MethodPost, "/api/users", `{"email":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser_RequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	rec := doRequest(t, h, http.MethodPut, "/api/users",
		`{"email":"new@example.com","password":"newpass"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodPut, "/api/users",
		`{"email":"new@example.com","password":"newpass"}`, bearer("not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	registerUser(t, h, "walt@example.com", "123456")
	login := loginUser(t, h, "walt@example.com", "123456")

	rec := doRequest(t, h, http.MethodPut, "/api/users",
		`{"email":"heisenberg@example.com","password":"better-secret"}`, bearer(login.Token))
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeBody[userResponse](t, rec)
	assert.Equal(t, "heisenberg@example.com", updated.Email)
	assert.Equal(t, login.ID, updated.ID)

	// New credentials work, old ones do not.
	loginUser(t, h, "heisenberg@example.com", "better-secret")
	rec = doRequest(t, h, http.MethodPost, "/api/login",
		`{"email":"walt@example.com","password":"123456"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateUser_MissingFields(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	registerUser(t, h, "walt@example.com", "123456")
	login := loginUser(t, h, "walt@example.com", "123456")

	rec := doRequest(t, h, http.MethodPut, "/api/users",
		`{"email":"new@example.com"}`, bearer(login.Token))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
