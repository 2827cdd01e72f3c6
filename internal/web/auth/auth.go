// Package auth manages the web tier's session cookie: a signed user-id
// token named "auth", httponly, SameSite=Lax, valid for 30 days.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ramchaik/gojo/pkg/helpers"
)

const CookieName = "auth"

// ctxUserKey is where RequireAuth stores the verified user id.
const ctxUserKey = "authUserID"

type Manager struct {
	Tokens *helpers.AuthTokenManager
	Domain string
	Secure bool
}

func NewManager(tokens *helpers.AuthTokenManager, domain string, secure bool) *Manager {
	return &Manager{Tokens: tokens, Domain: domain, Secure: secure}
}

// SetSession signs userID and writes the auth cookie on the response.
func (m *Manager) SetSession(c *gin.Context, userID string) error {
	token, _, err := m.Tokens.Sign(userID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.Tokens.TTL.Seconds()), "/", m.Domain, m.Secure, true)
	return nil
}

// ClearSession overwrites the auth cookie with an already-expired one.
func (m *Manager) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", m.Domain, m.Secure, true)
}

// UserID reads and verifies the auth cookie, returning the embedded user id.
func (m *Manager) UserID(c *gin.Context) (string, error) {
	token, err := c.Cookie(CookieName)
	if err != nil {
		return "", err
	}
	return m.Tokens.Verify(token)
}

// RequireAuth gates a route group: a missing or invalid cookie is cleared
// and the browser is redirected to /login.
func (m *Manager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := m.UserID(c)
		if err != nil {
			m.ClearSession(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ctxUserKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the user id stored by RequireAuth.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ctxUserKey)
	id, _ := v.(string)
	return id
}
