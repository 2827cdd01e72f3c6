package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/ramchaik/gojo/config"
	"github.com/ramchaik/gojo/internal/domain/entity"
	"github.com/ramchaik/gojo/internal/infrastructure/postgres"
	"github.com/ramchaik/gojo/pkg/helpers"
)

// seed creates a demo user with a board for local development.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", "demo@example.com", "email of the seeded user")
	name := flag.String("name", "Demo User", "display name of the seeded user")
	password := flag.String("password", "password123", "password of the seeded user")
	board := flag.String("board", "Welcome Board", "name of the seeded board")
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	boards := postgres.NewBoardRepository(pool)

	salt, err := helpers.NewSalt()
	if err != nil {
		log.Fatalf("failed to generate salt: %v", err)
	}
	u := &entity.User{
		Email:        *email,
		Name:         *name,
		PasswordHash: helpers.HashPassword(*password, salt),
		PasswordSalt: salt,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	log.Printf("seeded user %s (%s)", u.Email, u.ID)

	b := &entity.Board{Name: *board}
	if err := boards.CreateWithOwner(ctx, b, u.ID); err != nil {
		log.Fatalf("failed to seed board: %v", err)
	}
	log.Printf("seeded board %q (%s) owned by %s", b.Name, b.ID, u.Email)
}
