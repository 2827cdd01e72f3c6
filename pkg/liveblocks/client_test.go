package liveblocks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeUserProxiesResponse(t *testing.T) {
	var got authorizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/authorize-user", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"token":"tok_abc"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	res, err := c.AuthorizeUser(context.Background(), "user-1", UserInfo{
		Email: "a@example.com",
		Name:  "A",
	}, "board-7", FullAccess)
	require.NoError(t, err)

	assert.True(t, res.Ok())
	assert.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"token":"tok_abc"}`, string(res.Body))

	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "a@example.com", got.UserInfo.Email)
	assert.Equal(t, []string{"room:write"}, got.Permissions["board-7"])
}

func TestAuthorizeUserCarriesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	res, err := c.AuthorizeUser(context.Background(), "user-1", UserInfo{}, "board-7", FullAccess)
	require.NoError(t, err)

	assert.False(t, res.Ok())
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.JSONEq(t, `{"error":"forbidden"}`, string(res.Body))
}
