// Package apiclient is the web tier's typed client for the REST API. Any
// non-2xx response becomes an error that aborts the current page action;
// 404s are distinguishable via IsNotFound.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// StatusError is returned for any non-2xx API response.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: unexpected status %d: %s", e.Status, e.Body)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusUnauthorized
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	CreatedAt string `json:"createdAt"`
}

type Board struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SecretID     string  `json:"secretId"`
	LastOpenedAt *string `json:"lastOpenedAt"`
	CreatedAt    string  `json:"createdAt"`
}

type BoardRole struct {
	ID      string `json:"id"`
	BoardID string `json:"boardId"`
	UserID  string `json:"userId"`
	Role    string `json:"role"`
	AddedAt string `json:"addedAt"`
}

type Member struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	BoardRoleID string `json:"boardRoleId"`
	AddedAt     string `json:"addedAt"`
}

// SessionData is the payload minted by POST /liveblocks-session.
type SessionData struct {
	User struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatarUrl"`
	} `json:"user"`
	BoardRole struct {
		Role string `json:"role"`
	} `json:"boardRole"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &StatusError{Status: res.StatusCode, Body: data}
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		UserID string `json:"userId"`
	}
	err := c.do(ctx, http.MethodPost, "/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return "", err
	}
	return out.UserID, nil
}

func (c *Client) Register(ctx context.Context, email, name, password string) (string, error) {
	var out struct {
		UserID string `json:"userId"`
	}
	err := c.do(ctx, http.MethodPost, "/users", map[string]string{"email": email, "name": name, "password": password}, &out)
	if err != nil {
		return "", err
	}
	return out.UserID, nil
}

func (c *Client) UserExists(ctx context.Context, email string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	err := c.do(ctx, http.MethodGet, "/users/exists?email="+url.QueryEscape(email), nil, &out)
	return out.Exists, err
}

func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/users/search?q="+url.QueryEscape(query), nil, &out)
	return out, err
}

func (c *Client) GetBoards(ctx context.Context, userID string) ([]Board, error) {
	var out []Board
	err := c.do(ctx, http.MethodGet, "/boards?userId="+url.QueryEscape(userID), nil, &out)
	return out, err
}

func (c *Client) CreateBoard(ctx context.Context, userID, boardName string) (*Board, error) {
	var b Board
	err := c.do(ctx, http.MethodPost, "/boards", map[string]string{"userId": userID, "boardName": boardName}, &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) GetBoard(ctx context.Context, boardID string) (*Board, error) {
	var b Board
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardID), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) TouchLastOpened(ctx context.Context, boardID string) error {
	return c.do(ctx, http.MethodPatch, "/boards/"+url.PathEscape(boardID)+"/last-opened", nil, nil)
}

func (c *Client) RenameBoard(ctx context.Context, boardID, newName string) error {
	return c.do(ctx, http.MethodPatch, "/boards/"+url.PathEscape(boardID)+"/name", map[string]string{"newBoardName": newName}, nil)
}

func (c *Client) DeleteBoard(ctx context.Context, boardID string) (*Board, error) {
	var b Board
	if err := c.do(ctx, http.MethodDelete, "/boards/"+url.PathEscape(boardID), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) GetRole(ctx context.Context, boardID, userID string) (*BoardRole, error) {
	var br BoardRole
	path := "/board-roles?userId=" + url.QueryEscape(userID) + "&boardId=" + url.QueryEscape(boardID)
	if err := c.do(ctx, http.MethodGet, path, nil, &br); err != nil {
		return nil, err
	}
	return &br, nil
}

func (c *Client) UpsertEditorRole(ctx context.Context, boardID, userID string) error {
	return c.do(ctx, http.MethodPost, "/board-roles", map[string]string{"userId": userID, "boardId": boardID}, nil)
}

func (c *Client) CheckSecret(ctx context.Context, boardID, secretID string) (bool, error) {
	var out struct {
		IsAllowed bool `json:"isAllowed"`
	}
	err := c.do(ctx, http.MethodPost, "/boards/check-secret", map[string]string{"boardId": boardID, "secretId": secretID}, &out)
	return out.IsAllowed, err
}

func (c *Client) IsOwner(ctx context.Context, boardID, userID string) (bool, error) {
	var out struct {
		IsOwner bool `json:"isOwner"`
	}
	err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardID)+"/owner/"+url.PathEscape(userID), nil, &out)
	return out.IsOwner, err
}

func (c *Client) CanEdit(ctx context.Context, boardID, userID string) (bool, error) {
	var out struct {
		CanEdit bool `json:"canEdit"`
	}
	err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardID)+"/can-edit?userId="+url.QueryEscape(userID), nil, &out)
	return out.CanEdit, err
}

func (c *Client) AddMember(ctx context.Context, boardID, email string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/boards/"+url.PathEscape(boardID)+"/members", map[string]string{"email": email}, &out)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ListMembers(ctx context.Context, boardID string) ([]Member, error) {
	var out []Member
	err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardID)+"/roles", nil, &out)
	return out, err
}

func (c *Client) PrepareLiveblocksSession(ctx context.Context, userID, room string) (*SessionData, error) {
	var out SessionData
	err := c.do(ctx, http.MethodPost, "/liveblocks-session", map[string]string{"userId": userID, "room": room}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
