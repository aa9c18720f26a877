package main

import (
	"context"
	"log"
	"os"

	"trading_platform/internal/db"
	"trading_platform/internal/domain"
	"trading_platform/internal/repository"
	"trading_platform/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// Bootstraps the first admin account. Expects DATABASE_URL, ADMIN_EMAIL and
// ADMIN_PASSWORD env vars.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || len(password) < 8 {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD (min 8 chars) required")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("lookup failed: %v", err)
	}

	var u *domain.User
	if existing != nil {
		u = existing
		log.Printf("user already exists id=%d\n", u.ID)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash failed: %v", err)
		}

		u = &domain.User{
			Email:        email,
			Username:     "admin",
			PasswordHash: string(hash),
			IsAdmin:      true,
		}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create admin failed: %v", err)
		}
		log.Printf("admin created id=%d\n", u.ID)
	}

	// issue a token for immediate API access
	service.InitJWT()
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
