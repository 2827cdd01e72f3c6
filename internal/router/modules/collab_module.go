package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/ramchaik/gojo/internal/interface/http"
)

// CollabModule exposes the collaboration-session preparation endpoint.
type CollabModule struct {
	Handler *handlers.CollabHandler
}

func NewCollabModule(h *handlers.CollabHandler) *CollabModule {
	return &CollabModule{Handler: h}
}

func (m *CollabModule) Register(rg *gin.RouterGroup) {
	rg.POST("/liveblocks-session", m.Handler.PrepareSession)
}
