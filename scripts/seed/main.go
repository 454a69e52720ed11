package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/warf-hq/warf-backend/internal/adapter/repository"
	"github.com/warf-hq/warf-backend/internal/domain/entities"
	"github.com/warf-hq/warf-backend/internal/infrastructure/database"
	"github.com/warf-hq/warf-backend/pkg/config"
)

type seedUser struct {
	username  string
	email     string
	firstName string
	lastName  string
	password  string
	role      entities.UserRole
}

// Seeds a local database with one admin and a couple of employees so the API
// is usable right after migrate.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	seeds := []seedUser{
		{"admin", "admin@warf.local", "Ada", "Admin", "admin12345", entities.RoleAdmin},
		{"alice", "alice@warf.local", "Alice", "Nguyen", "alice12345", entities.RoleEmployee},
		{"bob", "bob@warf.local", "Bob", "Tran", "bob1234567", entities.RoleEmployee},
	}

	for _, s := range seeds {
		if _, err := userRepo.FindByUsername(ctx, s.username); err == nil {
			log.Printf("⏭️  User %s already exists, skipping", s.username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", s.username, err)
		}

		user := entities.NewUser(s.username, s.email)
		user.FirstName = s.firstName
		user.LastName = s.lastName
		user.PasswordHash = string(hash)
		user.Role = s.role

		profile := entities.NewProfile(user.ID)
		if err := userRepo.CreateWithProfile(ctx, user, profile); err != nil {
			log.Fatalf("Failed to create user %s: %v", s.username, err)
		}
		log.Printf("✅ Created %s (%s)", s.username, s.role)
	}

	log.Println("✅ Seeding complete")
}
