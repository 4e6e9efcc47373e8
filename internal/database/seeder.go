// server/internal/database/seeder.go
package database

import (
	"context"
	"log"
	"time"

	"gestor-frete-api-server/config"
	"gestor-frete-api-server/internal/auth"
	"gestor-frete-api-server/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin creates the bootstrap admin account when the accounts
// collection has none. Credentials come from config (ADMIN_EMAIL /
// ADMIN_PASSWORD).
func SeedAdmin(db *mongo.Database, cfg config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Println("Admin credentials not configured. Seeding skipped.")
		return nil
	}

	accounts := db.Collection("accounts")

	count, err := accounts.CountDocuments(context.Background(), bson.M{"role": models.RoleAdmin})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin account already exists. Seeding skipped.")
		return nil
	}

	log.Println("Admin account not found. Seeding...")
	hashedPassword, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := models.Account{
		AccountID: "adm-" + uuid.New().String()[:8],
		Email:     cfg.Admin.Email,
		Name:      "Administrador",
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		Status:    "active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := accounts.InsertOne(context.Background(), admin); err != nil {
		return err
	}

	log.Println("Admin account seeded successfully.")
	return nil
}
