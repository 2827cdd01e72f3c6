package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ramchaik/gojo/internal/domain/entity"
	repo "github.com/ramchaik/gojo/internal/domain/repository"
	"github.com/ramchaik/gojo/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already taken")
)

// UserService is the credential store: registration, login verification and
// profile lookups. Elasticsearch indexing and GCS avatar upload are optional;
// nil clients disable them.
type UserService struct {
	Repo         repo.UserRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	GCS          *storage.Client
	GCSBucket    string
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, gcs *storage.Client, gcsBucket string) *UserService {
	return &UserService{
		Repo:         r,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
	}
}

// Register creates a user with freshly salted password material. Only the
// derived hash and the salt are stored.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*entity.User, error) {
	salt, err := helpers.NewSalt()
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        email,
		Name:         name,
		PasswordHash: helpers.HashPassword(password, salt),
		PasswordSalt: salt,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.indexUser(ctx, u)
	return u, nil
}

// Authenticate verifies email/password and returns the user id. Unknown
// email, missing password row and wrong password all produce the same
// ErrInvalidCredentials; store failures propagate unchanged.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !u.HasPassword() || !helpers.VerifyPassword(password, u.PasswordSalt, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return u.ID, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ExistsByEmail reports whether a user with the email is registered.
func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UploadAvatar stores the image in GCS and records its public URL on the
// user. The URL also flows into collaboration presence metadata.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("avatar storage not configured")
	}
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", u.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateAvatarURL(ctx, u.ID, url); err != nil {
		return "", err
	}
	u.AvatarURL = url
	s.indexUser(ctx, u)
	return url, nil
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	// Field names match the JSON the API serves so search hits can be
	// returned to the share page as-is.
	doc := map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"avatarUrl": u.AvatarURL,
		"createdAt": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// SearchUsers performs a simple multi_match search on email and name for the
// share-page member picker. Returns an empty slice when ES is not configured.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
