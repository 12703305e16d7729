// Command seed creates demo users with funded accounts so the API can
// be exercised locally.
package main

import (
	"context"
	"log"
	"os"

	"bux/internal/config"
	"bux/internal/models"
	"bux/internal/repositories"
	"bux/internal/services/user"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set in environment")
	}

	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	ctx := context.Background()

	seed := []struct {
		username string
		password string
		role     string
	}{
		{"admin", adminPassword, "admin"},
		{"alice", "alice-demo-pw", "user"},
		{"bob", "bob-demo-pw", "user"},
	}

	for _, s := range seed {
		if _, err := userRepo.GetByUsername(ctx, s.username); err == nil {
			log.Printf("user %q already exists, skipping", s.username)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}

		u := &models.User{
			Username: s.username,
			Password: string(hashed),
			Role:     s.role,
		}
		account := &models.Account{Balance: user.OpeningBalance}
		if err := userRepo.CreateWithAccount(ctx, u, account); err != nil {
			log.Fatalf("Failed to seed user %q: %v", s.username, err)
		}
		log.Printf("seeded user %q (account %d, balance %s)", s.username, account.ID, account.Balance)
	}
}
