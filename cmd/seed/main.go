package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studiodesk/internal/config"
	"studiodesk/internal/database"
	"studiodesk/internal/domain"
	"studiodesk/internal/repository"
)

// Seeds the minimum a fresh install needs: schema, the default tariff
// and an admin account. Safe to run more than once.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	store := repository.NewStore(db)
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	if err != nil {
		log.Fatal("Pricing settings: ", err)
	}
	log.Printf("Pricing settings ready (hourly rate %d)", settings.HourlyRate)

	email := getEnv("SEED_ADMIN_EMAIL", "admin@studiodesk.local")
	password := getEnv("SEED_ADMIN_PASSWORD", "admin123")

	if _, err := store.GetUserByEmail(ctx, email); err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Lookup admin: ", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Hash password: ", err)
	}

	admin := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         domain.RoleAdmin,
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		log.Fatal("Create admin: ", err)
	}

	log.Printf("Admin created: %s / %s", email, password)
	log.Println("Seed completed")
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
