package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ramchaik/gojo/config"
	"github.com/ramchaik/gojo/internal/interface/middleware"
	"github.com/ramchaik/gojo/internal/web"
	"github.com/ramchaik/gojo/internal/web/apiclient"
	"github.com/ramchaik/gojo/internal/web/auth"
	"github.com/ramchaik/gojo/pkg/helpers"
	"github.com/ramchaik/gojo/pkg/liveblocks"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-web", cfg.Env)
	gin.SetMode(cfg.GinMode)

	secret, insecure := cfg.SigningSecret()
	if insecure {
		logger.Warn("COOKIE_SECRET is not set, using the insecure default signing key; sessions are forgeable")
	}
	tokens := helpers.NewAuthTokenManager(secret, cfg.CookieMaxAge)
	secure := cfg.CookieSecure || cfg.Env == "production"
	sessions := auth.NewManager(tokens, cfg.CookieDomain, secure)

	api := apiclient.New(cfg.APIBaseURL)
	lb := liveblocks.NewClient(cfg.LiveblocksBaseURL, cfg.LiveblocksSecretKey)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "web/static")

	h := web.NewHandler(api, sessions, lb, logger)
	h.Register(r)

	srv := &http.Server{Addr: ":" + cfg.WebPort, Handler: r}
	go func() {
		logger.Infof("web server starting on :%s", cfg.WebPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down web server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
