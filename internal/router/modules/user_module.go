package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/ramchaik/gojo/internal/interface/http"
	"github.com/ramchaik/gojo/internal/interface/middleware"
)

// UserModule wires the credential-store endpoints. Login and registration
// take per-IP rate limits; the rest are unthrottled lookups.
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath())
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.GET("/users/exists", m.Handler.Exists)
	rg.GET("/users/search", m.Handler.Search)
	rg.GET("/users/:userId", m.Handler.GetUser)
	rg.POST("/users/:userId/avatar", m.Handler.UploadAvatar)
}
