package router

import (
	"github.com/ramchaik/gojo/internal/application"
	"github.com/ramchaik/gojo/internal/container"
	pginfra "github.com/ramchaik/gojo/internal/infrastructure/postgres"
	handlers "github.com/ramchaik/gojo/internal/interface/http"
	"github.com/ramchaik/gojo/internal/router/modules"
)

// InitModules builds the repository/service/handler stack from the container
// and registers all feature modules. Called once during startup.
func InitModules(r *Registry, c *container.Container) {
	userRepo := pginfra.NewUserRepository(c.PGPool)
	boardRepo := pginfra.NewBoardRepository(c.PGPool)

	userSvc := application.NewUserService(userRepo, c.Logger, c.ES, c.Cfg.ESUsersIndex, c.GCS, c.Cfg.GCSBucket)
	boardSvc := application.NewBoardService(boardRepo, userRepo, c.Logger, c.Invites)

	userHandler := handlers.NewUserHandler(userSvc, c.Logger)
	boardHandler := handlers.NewBoardHandler(boardSvc, c.Logger)
	collabHandler := handlers.NewCollabHandler(userSvc, boardSvc, c.Logger)

	r.Add(modules.NewUserModule(userHandler, c.Redis))
	r.Add(modules.NewBoardModule(boardHandler, c.Redis))
	r.Add(modules.NewCollabModule(collabHandler))
}
