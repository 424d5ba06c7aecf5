// Command bootstrap-admin creates or resets the configured admin account
// directly against the database. Useful when the admin is locked out.
package main

import (
	"log"

	"github.com/DDricck/price-pulse-product-manager/internal/config"
	"github.com/DDricck/price-pulse-product-manager/internal/model"
	"github.com/DDricck/price-pulse-product-manager/internal/repository"
	"github.com/DDricck/price-pulse-product-manager/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.ConnectDB(cfg.Database)
	if err := db.AutoMigrate(&model.User{}, &model.UserRole{}, &model.UserPermissions{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewUserRoleRepo(db)

	user, err := userRepo.FindByEmail(cfg.Admin.Email)
	if err != nil {
		// No account yet: create it
		user = &model.User{
			Email:     cfg.Admin.Email,
			FirstName: "Admin",
			IsActive:  true,
		}
		if err := user.SetPassword(cfg.Admin.Password); err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		if err := userRepo.Create(user); err != nil {
			log.Fatalf("failed to create admin user: %v", err)
		}
		log.Printf("admin user %s created", cfg.Admin.Email)
	} else {
		if err := user.SetPassword(cfg.Admin.Password); err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		if err := userRepo.UpdatePassword(user.ID, user.Password); err != nil {
			log.Fatalf("failed to reset password: %v", err)
		}
		log.Printf("password for %s has been reset", cfg.Admin.Email)
	}

	if err := roleRepo.Grant(user.ID); err != nil {
		log.Fatalf("failed to grant admin role: %v", err)
	}
	log.Printf("admin role granted to %s", cfg.Admin.Email)
}
