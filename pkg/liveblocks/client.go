// Package liveblocks is a minimal client for the Liveblocks authorization
// API. The collaboration service owns all room state (cards, cursors,
// presence); this process only mints access tokens for it.
package liveblocks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// FullAccess is the permission set granted to every board member; both roles
// carry full edit rights.
var FullAccess = []string{"room:write"}

type Client struct {
	BaseURL   string
	SecretKey string

	httpc *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		httpc:     &http.Client{Timeout: 10 * time.Second},
	}
}

// UserInfo is attached to the session as presence metadata.
type UserInfo struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type authorizeRequest struct {
	UserID      string              `json:"userId"`
	UserInfo    UserInfo            `json:"userInfo"`
	Permissions map[string][]string `json:"permissions"`
}

// AuthorizeResult carries the upstream response untouched so callers can
// proxy it verbatim to the browser.
type AuthorizeResult struct {
	Status int
	Body   []byte
}

// Ok reports whether the authorization succeeded.
func (r *AuthorizeResult) Ok() bool {
	return r.Status >= 200 && r.Status < 300
}

// AuthorizeUser requests a session token granting perms on room for the
// given user.
func (c *Client) AuthorizeUser(ctx context.Context, userID string, info UserInfo, room string, perms []string) (*AuthorizeResult, error) {
	payload := authorizeRequest{
		UserID:      userID,
		UserInfo:    info,
		Permissions: map[string][]string{room: perms},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v2/authorize-user", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return &AuthorizeResult{Status: res.StatusCode, Body: body}, nil
}
