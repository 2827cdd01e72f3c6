package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ramchaik/gojo/internal/application"
	"github.com/ramchaik/gojo/pkg/response"
	"github.com/ramchaik/gojo/pkg/validation"
)

// CollabHandler prepares collaboration-session data: the web tier exchanges
// a (userId, room) pair for the user profile and board role it needs to mint
// a Liveblocks grant.
type CollabHandler struct {
	Users  *application.UserService
	Boards *application.BoardService
	Logger *logrus.Logger
}

func NewCollabHandler(users *application.UserService, boards *application.BoardService, logger *logrus.Logger) *CollabHandler {
	return &CollabHandler{Users: users, Boards: boards, Logger: logger}
}

type sessionRequest struct {
	UserID string `json:"userId" binding:"required"`
	Room   string `json:"room" binding:"required"`
}

// PrepareSession POST /api/v1/liveblocks-session
func (h *CollabHandler) PrepareSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Users.GetByID(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.Internal(c, "failed to fetch user")
		return
	}

	// The room id is the board id; a role row is the admission ticket.
	br, err := h.Boards.GetRole(c.Request.Context(), req.Room, req.UserID)
	if err != nil {
		if errors.Is(err, application.ErrRoleNotFound) {
			response.NotFound(c, "Board role not found")
			return
		}
		response.Internal(c, "failed to fetch board role")
		return
	}

	response.OK(c, gin.H{
		"user": gin.H{
			"id":        u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"avatarUrl": u.AvatarURL,
		},
		"boardRole": gin.H{
			"role": br.Role,
		},
	})
}
