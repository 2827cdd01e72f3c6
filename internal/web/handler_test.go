package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramchaik/gojo/internal/web/apiclient"
	"github.com/ramchaik/gojo/internal/web/auth"
	"github.com/ramchaik/gojo/pkg/helpers"
	"github.com/ramchaik/gojo/pkg/liveblocks"
)

// fakeAPI is a scripted REST API for web-tier tests.
type fakeAPI struct {
	roles   map[string]string // boardID/userID -> role
	secret  string
	touched int
	granted []string
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /boards/b1", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(apiclient.Board{ID: "b1", Name: "Board", SecretID: f.secret})
	})
	mux.HandleFunc("GET /board-roles", func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("boardId") + "/" + r.URL.Query().Get("userId")
		role, ok := f.roles[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Board role not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(apiclient.BoardRole{BoardID: "b1", Role: role})
	})
	mux.HandleFunc("POST /boards/check-secret", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]bool{"isAllowed": body["secretId"] == f.secret})
	})
	mux.HandleFunc("POST /board-roles", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		key := body["boardId"] + "/" + body["userId"]
		if _, ok := f.roles[key]; !ok {
			f.roles[key] = "Editor"
		}
		f.granted = append(f.granted, key)
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
	mux.HandleFunc("PATCH /boards/b1/last-opened", func(w http.ResponseWriter, _ *http.Request) {
		f.touched++
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
	mux.HandleFunc("GET /boards/b1/owner/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"isOwner": false})
	})
	mux.HandleFunc("POST /liveblocks-session", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		key := body["room"] + "/" + body["userId"]
		if _, ok := f.roles[key]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Board role not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":"` + body["userId"] + `","email":"u@example.com","name":"U","avatarUrl":""},"boardRole":{"role":"` + f.roles[key] + `"}}`))
	})
	return mux
}

func newWebFixture(t *testing.T, api *fakeAPI, lbURL string) (*gin.Engine, *auth.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	apiSrv := httptest.NewServer(api.handler())
	t.Cleanup(apiSrv.Close)

	sessions := auth.NewManager(helpers.NewAuthTokenManager("test-secret", time.Hour), "", false)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := NewHandler(apiclient.New(apiSrv.URL), sessions, liveblocks.NewClient(lbURL, "sk_test"), logger)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("board.html").Parse(`board {{.Board.ID}}`)))
	h.Register(r)
	return r, sessions
}

func sessionCookie(t *testing.T, sessions *auth.Manager, userID string) *http.Cookie {
	t.Helper()
	token, _, err := sessions.Tokens.Sign(userID)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func TestBoardAdmission(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		roles      map[string]string
		query      string
		wantStatus int
		wantGrant  bool
	}{
		{"member enters", "u1", map[string]string{"b1/u1": "Owner"}, "", http.StatusOK, false},
		{"guest with valid secret becomes editor", "u2", map[string]string{}, "?secret=s3cret", http.StatusOK, true},
		{"guest with wrong secret is turned away", "u2", map[string]string{}, "?secret=wrong", http.StatusFound, false},
		{"guest without secret is turned away", "u2", map[string]string{}, "", http.StatusFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{roles: tt.roles, secret: "s3cret"}
			r, sessions := newWebFixture(t, api, "http://unused.invalid")

			req := httptest.NewRequest(http.MethodGet, "/boards/b1"+tt.query, nil)
			req.AddCookie(sessionCookie(t, sessions, tt.userID))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusFound {
				assert.Equal(t, "/boards", w.Header().Get("Location"))
				assert.Zero(t, api.touched)
			} else {
				assert.Equal(t, 1, api.touched)
			}
			if tt.wantGrant {
				assert.Contains(t, api.granted, "b1/"+tt.userID)
			} else {
				assert.NotContains(t, api.granted, "b1/"+tt.userID)
			}
		})
	}
}

func TestBoardRequiresSession(t *testing.T) {
	api := &fakeAPI{roles: map[string]string{}, secret: "s3cret"}
	r, _ := newWebFixture(t, api, "http://unused.invalid")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boards/b1", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLiveblocksAuthBridge(t *testing.T) {
	lbSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/authorize-user", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"token":"tok_live"}`))
	}))
	defer lbSrv.Close()

	api := &fakeAPI{roles: map[string]string{"b1/u1": "Owner"}, secret: "s3cret"}
	r, sessions := newWebFixture(t, api, lbSrv.URL)

	body := bytes.NewBufferString(`{"room":"b1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/liveblocks-auth", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, sessions, "u1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"tok_live"}`, w.Body.String())
}

func TestLiveblocksAuthForbiddenWithoutRole(t *testing.T) {
	api := &fakeAPI{roles: map[string]string{}, secret: "s3cret"}
	r, sessions := newWebFixture(t, api, "http://unused.invalid")

	body := bytes.NewBufferString(`{"room":"b1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/liveblocks-auth", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, sessions, "u9"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
