package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hsaito/project-tracking-api/internal/auth"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/auth/register", map[string]string{
		"email":      "new@example.com",
		"password":   "supersecret",
		"first_name": "New",
		"last_name":  "User",
		"birth_date": "1990-04-01",
		"gender":     "female",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		User struct {
			Email     string  `json:"email"`
			FirstName string  `json:"first_name"`
			BirthDate *string `json:"birth_date"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "new@example.com", response.User.Email)
	require.Equal(t, "New", response.User.FirstName)
	require.NotNil(t, response.User.BirthDate)
	require.Equal(t, "1990-04-01", *response.User.BirthDate)

	cookies := w.Result().Cookies()
	require.NotNil(t, findCookie(cookies, auth.AccessTokenCookie))
	require.NotNil(t, findCookie(cookies, auth.RefreshTokenCookie))
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "taken@example.com", "supersecret")

	w := env.doJSON(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    "taken@example.com",
		"password": "othersecret",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "existing@example.com", "supersecret")

	w := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing@example.com", response.User.Email)

	cookies := w.Result().Cookies()
	access := findCookie(cookies, auth.AccessTokenCookie)
	require.NotNil(t, access)
	require.True(t, access.HttpOnly)
	require.Equal(t, "/", access.Path)
	require.NotNil(t, findCookie(cookies, auth.RefreshTokenCookie))
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "existing@example.com", "supersecret")

	w := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_UnknownEmailSameError(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "existing@example.com", "supersecret")

	wrongPassword := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong",
	}, nil)
	unknownEmail := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	require.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuthHandler_Login_InactiveAccount(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "inactive@example.com", "supersecret")
	require.NoError(t, env.db.Table("users").Where("email = ?", "inactive@example.com").Update("is_active", false).Error)

	w := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "inactive@example.com",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t)

	cookies := env.registerUser(t, "me@example.com", "supersecret")

	w := env.doJSON(t, http.MethodGet, "/auth/me", nil, cookies)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "me@example.com", response.Email)
}

func TestAuthHandler_GetCurrentUser_NoCookie(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodGet, "/auth/me", nil, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	env := setupTestEnv(t)

	cookies := env.registerUser(t, "refresh@example.com", "supersecret")
	refresh := findCookie(cookies, auth.RefreshTokenCookie)
	require.NotNil(t, refresh)

	w := env.doJSON(t, http.MethodPost, "/auth/refresh", nil, []*http.Cookie{refresh})

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Access token refreshed", response.Detail)

	newAccess := findCookie(w.Result().Cookies(), auth.AccessTokenCookie)
	require.NotNil(t, newAccess)

	me := env.doJSON(t, http.MethodGet, "/auth/me", nil, []*http.Cookie{newAccess})
	require.Equal(t, http.StatusOK, me.Code)
}

func TestAuthHandler_Refresh_MissingCookie(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/auth/refresh", nil, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupTestEnv(t)

	cookies := env.registerUser(t, "logout@example.com", "supersecret")
	refresh := findCookie(cookies, auth.RefreshTokenCookie)
	require.NotNil(t, refresh)

	w := env.doJSON(t, http.MethodPost, "/auth/logout", nil, cookies)

	require.Equal(t, http.StatusResetContent, w.Code)

	var response struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Logout successful", response.Detail)

	for _, name := range []string{auth.AccessTokenCookie, auth.RefreshTokenCookie} {
		cleared := findCookie(w.Result().Cookies(), name)
		require.NotNil(t, cleared)
		require.Empty(t, cleared.Value)
		require.Less(t, cleared.MaxAge, 0)
	}

	// The blacklisted refresh token can no longer mint access tokens.
	refreshAttempt := env.doJSON(t, http.MethodPost, "/auth/refresh", nil, []*http.Cookie{refresh})
	require.Equal(t, http.StatusUnauthorized, refreshAttempt.Code)
}

func TestAuthHandler_Logout_WithoutCookieStillSucceeds(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/auth/logout", nil, nil)
	require.Equal(t, http.StatusResetContent, w.Code)

	// Repeating with a garbage token is equally harmless.
	w = env.doJSON(t, http.MethodPost, "/auth/logout", nil, []*http.Cookie{{
		Name:  auth.RefreshTokenCookie,
		Value: "not-a-token",
	}})
	require.Equal(t, http.StatusResetContent, w.Code)
}

func TestAuthHandler_LogoutDoesNotRevokeOtherSessions(t *testing.T) {
	env := setupTestEnv(t)

	env.registerUser(t, "multi@example.com", "supersecret")

	first := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "multi@example.com",
		"password": "supersecret",
	}, nil)
	second := env.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "multi@example.com",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	firstRefresh := findCookie(first.Result().Cookies(), auth.RefreshTokenCookie)
	secondRefresh := findCookie(second.Result().Cookies(), auth.RefreshTokenCookie)

	logout := env.doJSON(t, http.MethodPost, "/auth/logout", nil, []*http.Cookie{firstRefresh})
	require.Equal(t, http.StatusResetContent, logout.Code)

	revoked := env.doJSON(t, http.MethodPost, "/auth/refresh", nil, []*http.Cookie{firstRefresh})
	require.Equal(t, http.StatusUnauthorized, revoked.Code)

	stillValid := env.doJSON(t, http.MethodPost, "/auth/refresh", nil, []*http.Cookie{secondRefresh})
	require.Equal(t, http.StatusOK, stillValid.Code)
}
