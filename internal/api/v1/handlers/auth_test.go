package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp()
	email := uniqueEmail("reg")

	user := registerUser(t, app, "Alice", email, "password123")
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, email, user["email"])
	assert.NotZero(t, user["id"])
	// The read view must never carry hash material.
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")

	token := loginUser(t, app, email, "password123")
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp()
	email := uniqueEmail("dup")

	registerUser(t, app, "First", email, "password123")

	resp := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Second",
		"email":    email,
		"password": "password456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Email already registered", body["message"])
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp()

	cases := []struct {
		name string
		body map[string]string
	}{
		{"short password", map[string]string{"name": "A", "email": uniqueEmail("v"), "password": "short"}},
		{"bad email", map[string]string{"name": "A", "email": "not-an-email", "password": "password123"}},
		{"missing name", map[string]string{"email": uniqueEmail("v"), "password": "password123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, "POST", "/api/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLoginBadCredentials(t *testing.T) {
	app := newTestApp()
	email := uniqueEmail("badlogin")
	registerUser(t, app, "Bob", email, "password123")

	// Wrong password and unknown email must be indistinguishable.
	for _, creds := range [][2]string{
		{email, "wrongpassword"},
		{uniqueEmail("ghost"), "password123"},
	} {
		form := url.Values{}
		form.Set("username", creds[0])
		form.Set("password", creds[1])
		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body map[string]interface{}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Incorrect email or password", body["message"])
	}
}

func TestMe(t *testing.T) {
	app := newTestApp()
	email := uniqueEmail("me")
	registerUser(t, app, "Carol", email, "password123")
	token := loginUser(t, app, email, "password123")

	resp := doJSON(t, app, "GET", "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user map[string]interface{}
	decodeBody(t, resp, &user)
	assert.Equal(t, email, user["email"])
	assert.Equal(t, "Carol", user["name"])
}

func TestMeUnauthenticated(t *testing.T) {
	app := newTestApp()

	for _, token := range []string{"", "not.a.token", "Bearer-less"} {
		resp := doJSON(t, app, "GET", "/api/users/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestTokenResolvesToLoginUser(t *testing.T) {
	app := newTestApp()
	emailA := uniqueEmail("resolve-a")
	emailB := uniqueEmail("resolve-b")
	registerUser(t, app, "A", emailA, "password123")
	registerUser(t, app, "B", emailB, "password123")

	tokenA := loginUser(t, app, emailA, "password123")

	resp := doJSON(t, app, "GET", "/api/users/me", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user map[string]interface{}
	decodeBody(t, resp, &user)
	assert.Equal(t, emailA, user["email"])
}
