package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mira/handwriting-trainer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEndpoints_RegisterLoginMe(t *testing.T) {
	ts := testutil.NewTestServer(t)

	registerBody, _ := json.Marshal(map[string]string{
		"email":       "student@example.com",
		"password":    "password123",
		"displayName": "student",
	})

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(registerBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
	token := testutil.AuthCookie(resp)
	require.NotEmpty(t, token, "register must set the accessToken cookie")

	var authResp struct {
		User struct {
			ID         string `json:"id"`
			Email      string `json:"email"`
			IsVerified bool   `json:"isVerified"`
		} `json:"user"`
	}
	testutil.AssertJSONResponse(t, resp, &authResp)
	assert.Equal(t, "student@example.com", authResp.User.Email)
	assert.False(t, authResp.User.IsVerified)

	t.Run("me with cookie", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var me struct {
			Email string `json:"email"`
		}
		testutil.AssertJSONResponse(t, resp, &me)
		assert.Equal(t, "student@example.com", me.Email)
	})

	t.Run("me without cookie", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestAuthEndpoints_LoginRotationInvalidatesOldToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	builder := testutil.NewUserBuilder()
	_, firstToken := builder.BuildAndAuthenticate(t, ts)

	// Log in again from a "second device"; the first token must go stale.
	loginBody, _ := json.Marshal(map[string]string{
		"email":    builder.Email(),
		"password": "testpassword123",
	})
	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(loginBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
	secondToken := testutil.AuthCookie(resp)
	require.NotEmpty(t, secondToken)
	require.NotEqual(t, firstToken, secondToken)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, firstToken)
	staleResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer staleResp.Body.Close()
	testutil.AssertStatusCode(t, staleResp, http.StatusUnauthorized)

	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, secondToken)
	freshResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer freshResp.Body.Close()
	testutil.AssertStatusCode(t, freshResp, http.StatusOK)
}

func TestAuthEndpoints_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/auth/logout"), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	// The cookie is cleared and the server-side rotation makes a replay of
	// the old token fail outright.
	cleared := false
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "accessToken" && cookie.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must clear the accessToken cookie")

	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, token)
	replay, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer replay.Body.Close()
	testutil.AssertStatusCode(t, replay, http.StatusUnauthorized)
}

func TestAuthEndpoints_VerifiedGateOnCreate(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().Unverified().BuildAndAuthenticate(t, ts)

	body := map[string]string{"name": "Cursive 101"}
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/classrooms"), body, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "not verified")
}
