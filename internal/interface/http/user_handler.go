package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ramchaik/gojo/internal/application"
	"github.com/ramchaik/gojo/pkg/response"
	"github.com/ramchaik/gojo/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// Login POST /api/v1/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	userID, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Failure(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.Logger.WithError(err).WithField("email", req.Email).Error("login failed")
		response.Internal(c, "failed to log in")
		return
	}
	response.OK(c, gin.H{"success": true, "userId": userID})
}

// Register POST /api/v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		// Duplicate email intentionally maps to the same generic failure
		// as an internal error; the front end probes /users/exists first.
		if !errors.Is(err, application.ErrEmailTaken) {
			h.Logger.WithError(err).WithField("email", req.Email).Error("create user failed")
		}
		response.Failure(c, http.StatusInternalServerError, "Failed to create user")
		return
	}
	response.OK(c, gin.H{"success": true, "userId": u.ID})
}

// GetUser GET /api/v1/users/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.GetByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.Internal(c, "failed to fetch user")
		return
	}
	response.OK(c, u)
}

// Exists GET /api/v1/users/exists?email=
func (h *UserHandler) Exists(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.BadRequest(c, "email is required", nil)
		return
	}
	exists, err := h.Svc.ExistsByEmail(c.Request.Context(), email)
	if err != nil {
		response.Internal(c, "failed to check user")
		return
	}
	response.OK(c, gin.H{"exists": exists})
}

// Search GET /api/v1/users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.OK(c, []any{})
		return
	}
	res, err := h.Svc.SearchUsers(c.Request.Context(), q, 10)
	if err != nil {
		response.Internal(c, "search failed")
		return
	}
	response.OK(c, res)
}

// UploadAvatar POST /api/v1/users/:userId/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "avatar file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.Param("userId"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Internal(c, "failed to upload avatar")
		return
	}
	response.OK(c, gin.H{"success": true, "avatarUrl": url})
}
