package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/ramchaik/gojo/internal/interface/http"
	"github.com/ramchaik/gojo/internal/interface/middleware"
)

// BoardModule wires board CRUD, role management and the access-control
// check endpoints.
type BoardModule struct {
	Handler *handlers.BoardHandler
	Redis   *redis.Client
}

func NewBoardModule(h *handlers.BoardHandler, rdb *redis.Client) *BoardModule {
	return &BoardModule{Handler: h, Redis: rdb}
}

func (m *BoardModule) Register(rg *gin.RouterGroup) {
	// The secret check admits unauthenticated guests, so it gets a limiter.
	secretLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/boards", m.Handler.Create)
	rg.GET("/boards", m.Handler.List)
	rg.POST("/boards/check-secret", secretLimiter, m.Handler.CheckSecret)
	rg.GET("/boards/:boardId", m.Handler.Get)
	rg.DELETE("/boards/:boardId", m.Handler.Delete)
	rg.PATCH("/boards/:boardId/last-opened", m.Handler.TouchLastOpened)
	rg.PATCH("/boards/:boardId/name", m.Handler.Rename)
	rg.GET("/boards/:boardId/owner/:userId", m.Handler.IsOwner)
	rg.GET("/boards/:boardId/can-edit", m.Handler.CanEdit)
	rg.POST("/boards/:boardId/members", m.Handler.AddMember)
	rg.GET("/boards/:boardId/roles", m.Handler.ListMembers)
	rg.GET("/boards/:boardId/roles/:userId", m.Handler.GetRoleByPath)

	rg.POST("/board-roles", m.Handler.UpsertRole)
	rg.GET("/board-roles", m.Handler.GetRoleByQuery)
}
