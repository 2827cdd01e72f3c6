package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ramchaik/gojo/internal/application"
	"github.com/ramchaik/gojo/internal/domain/entity"
	"github.com/ramchaik/gojo/pkg/response"
	"github.com/ramchaik/gojo/pkg/validation"
)

type BoardHandler struct {
	Svc    *application.BoardService
	Logger *logrus.Logger
}

func NewBoardHandler(svc *application.BoardService, logger *logrus.Logger) *BoardHandler {
	return &BoardHandler{Svc: svc, Logger: logger}
}

type createBoardRequest struct {
	UserID    string `json:"userId" binding:"required"`
	BoardName string `json:"boardName"`
}

type renameBoardRequest struct {
	NewBoardName string `json:"newBoardName" binding:"required"`
}

type upsertRoleRequest struct {
	UserID  string `json:"userId" binding:"required"`
	BoardID string `json:"boardId" binding:"required"`
}

type checkSecretRequest struct {
	BoardID  string `json:"boardId" binding:"required"`
	SecretID string `json:"secretId" binding:"required"`
}

type addMemberRequest struct {
	Email string `json:"email" binding:"required"`
}

// Create POST /api/v1/boards
func (h *BoardHandler) Create(c *gin.Context) {
	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	b, err := h.Svc.CreateBoard(c.Request.Context(), req.UserID, req.BoardName)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", req.UserID).Error("create board failed")
		response.Internal(c, "Failed to create board")
		return
	}
	response.OK(c, b)
}

// boardListItem is the list projection: lastOpenedAt becomes a short date
// string, or null when the board was never opened.
type boardListItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SecretID     string  `json:"secretId"`
	LastOpenedAt *string `json:"lastOpenedAt"`
	CreatedAt    string  `json:"createdAt"`
}

// List GET /api/v1/boards?userId=
func (h *BoardHandler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		response.BadRequest(c, "userId is required", nil)
		return
	}
	boards, err := h.Svc.ListBoardsForUser(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "failed to list boards")
		return
	}
	items := make([]boardListItem, 0, len(boards))
	for _, b := range boards {
		item := boardListItem{
			ID:        b.ID,
			Name:      b.Name,
			SecretID:  b.SecretID,
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
		}
		if b.LastOpenedAt != nil {
			s := b.LastOpenedAt.Format("1/2/2006")
			item.LastOpenedAt = &s
		}
		items = append(items, item)
	}
	response.OK(c, items)
}

// Get GET /api/v1/boards/:boardId
func (h *BoardHandler) Get(c *gin.Context) {
	b, err := h.Svc.GetBoard(c.Request.Context(), c.Param("boardId"))
	if err != nil {
		if errors.Is(err, application.ErrBoardNotFound) {
			response.NotFound(c, "Board not found")
			return
		}
		response.Internal(c, "failed to fetch board")
		return
	}
	response.OK(c, b)
}

// TouchLastOpened PATCH /api/v1/boards/:boardId/last-opened
func (h *BoardHandler) TouchLastOpened(c *gin.Context) {
	if err := h.Svc.TouchLastOpened(c.Request.Context(), c.Param("boardId")); err != nil {
		if errors.Is(err, application.ErrBoardNotFound) {
			response.NotFound(c, "Board not found")
			return
		}
		response.Internal(c, "failed to update board")
		return
	}
	response.Success(c)
}

// Rename PATCH /api/v1/boards/:boardId/name
func (h *BoardHandler) Rename(c *gin.Context) {
	var req renameBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RenameBoard(c.Request.Context(), c.Param("boardId"), req.NewBoardName); err != nil {
		if errors.Is(err, application.ErrBoardNotFound) {
			response.NotFound(c, "Board not found")
			return
		}
		response.Internal(c, "failed to rename board")
		return
	}
	response.Success(c)
}

// Delete DELETE /api/v1/boards/:boardId
func (h *BoardHandler) Delete(c *gin.Context) {
	b, err := h.Svc.DeleteBoard(c.Request.Context(), c.Param("boardId"))
	if err != nil {
		if errors.Is(err, application.ErrBoardNotFound) {
			response.NotFound(c, "Board not found")
			return
		}
		response.Internal(c, "failed to delete board")
		return
	}
	response.OK(c, b)
}

// UpsertRole POST /api/v1/board-roles
func (h *BoardHandler) UpsertRole(c *gin.Context) {
	var req upsertRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpsertEditorRole(c.Request.Context(), req.BoardID, req.UserID); err != nil {
		response.Internal(c, "failed to upsert board role")
		return
	}
	response.Success(c)
}

// GetRoleByQuery GET /api/v1/board-roles?userId=&boardId=
func (h *BoardHandler) GetRoleByQuery(c *gin.Context) {
	userID, boardID := c.Query("userId"), c.Query("boardId")
	if userID == "" || boardID == "" {
		response.BadRequest(c, "userId and boardId are required", nil)
		return
	}
	h.writeRole(c, boardID, userID)
}

// GetRoleByPath GET /api/v1/boards/:boardId/roles/:userId
func (h *BoardHandler) GetRoleByPath(c *gin.Context) {
	h.writeRole(c, c.Param("boardId"), c.Param("userId"))
}

func (h *BoardHandler) writeRole(c *gin.Context, boardID, userID string) {
	br, err := h.Svc.GetRole(c.Request.Context(), boardID, userID)
	if err != nil {
		if errors.Is(err, application.ErrRoleNotFound) {
			response.NotFound(c, "Board role not found")
			return
		}
		response.Internal(c, "failed to fetch board role")
		return
	}
	response.OK(c, br)
}

// CheckSecret POST /api/v1/boards/check-secret
func (h *BoardHandler) CheckSecret(c *gin.Context) {
	var req checkSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	allowed, err := h.Svc.CheckSecret(c.Request.Context(), req.BoardID, req.SecretID)
	if err != nil {
		if errors.Is(err, application.ErrBoardNotFound) {
			response.NotFound(c, "Board not found")
			return
		}
		response.Internal(c, "failed to check secret")
		return
	}
	response.OK(c, gin.H{"isAllowed": allowed})
}

// IsOwner GET /api/v1/boards/:boardId/owner/:userId
func (h *BoardHandler) IsOwner(c *gin.Context) {
	isOwner, err := h.Svc.IsOwner(c.Request.Context(), c.Param("boardId"), c.Param("userId"))
	if err != nil {
		response.Internal(c, "failed to check ownership")
		return
	}
	response.OK(c, gin.H{"isOwner": isOwner})
}

// CanEdit GET /api/v1/boards/:boardId/can-edit?userId=
func (h *BoardHandler) CanEdit(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		response.BadRequest(c, "userId is required", nil)
		return
	}
	canEdit, err := h.Svc.CanEdit(c.Request.Context(), c.Param("boardId"), userID)
	if err != nil {
		response.Internal(c, "failed to check edit permission")
		return
	}
	response.OK(c, gin.H{"canEdit": canEdit})
}

// AddMember POST /api/v1/boards/:boardId/members
func (h *BoardHandler) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AddMemberByEmail(c.Request.Context(), c.Param("boardId"), req.Email); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Failure(c, http.StatusNotFound, "User not found.")
			return
		}
		response.Internal(c, "failed to add member")
		return
	}
	response.OK(c, gin.H{"success": true, "message": fmt.Sprintf("User %q added to board.", req.Email)})
}

// ListMembers GET /api/v1/boards/:boardId/roles
func (h *BoardHandler) ListMembers(c *gin.Context) {
	members, err := h.Svc.ListMembers(c.Request.Context(), c.Param("boardId"))
	if err != nil {
		response.Internal(c, "failed to list board roles")
		return
	}
	if members == nil {
		members = []*entity.BoardMember{}
	}
	response.OK(c, members)
}
