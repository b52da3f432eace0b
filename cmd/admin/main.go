// Command admin provides role management utilities for gymdesk.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"gymdesk/internal/config"
	"gymdesk/internal/database"
	"gymdesk/internal/models"
	"gymdesk/internal/repository"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <email>      - Grant the Admin role")
		fmt.Println("  go run ./cmd/admin demote <email>       - Revoke the Admin role")
		fmt.Println("  go run ./cmd/admin list-admins          - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin promote <email>")
			os.Exit(1)
		}
		promote(db, os.Args[2])

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin demote <email>")
			os.Exit(1)
		}
		demote(db, os.Args[2])

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func mustGetUser(db *gorm.DB, email string) *models.User {
	users := repository.NewUserRepository(db)
	user, err := users.GetByEmail(context.Background(), email)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if user == nil {
		fmt.Printf("User %s not found\n", email)
		os.Exit(1)
	}
	return user
}

func promote(db *gorm.DB, email string) {
	user := mustGetUser(db, email)
	if user.HasRole(models.RoleAdmin) {
		fmt.Printf("User %s (ID: %d) is already an admin\n", user.Email, user.ID)
		return
	}

	users := repository.NewUserRepository(db)
	if err := users.AddRole(context.Background(), user, models.RoleAdmin); err != nil {
		log.Fatalf("Failed to grant Admin role: %v", err)
	}
	fmt.Printf("✓ User %s (ID: %d) promoted to admin\n", user.Email, user.ID)
}

func demote(db *gorm.DB, email string) {
	user := mustGetUser(db, email)
	if !user.HasRole(models.RoleAdmin) {
		fmt.Printf("User %s (ID: %d) is not an admin\n", user.Email, user.ID)
		return
	}

	var role models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		log.Fatalf("Failed to resolve Admin role: %v", err)
	}
	if err := db.Model(user).Association("Roles").Delete(&role); err != nil {
		log.Fatalf("Failed to revoke Admin role: %v", err)
	}
	fmt.Printf("✓ User %s (ID: %d) demoted from admin\n", user.Email, user.ID)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	err := db.
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", models.RoleAdmin).
		Find(&admins).Error
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found")
		return
	}
	fmt.Printf("Admins (%d):\n", len(admins))
	for _, a := range admins {
		fmt.Printf("  %d  %s\n", a.ID, a.Email)
	}
}
