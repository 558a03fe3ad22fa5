package database

import (
	"log"

	"github.com/careerpilot/autofill-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(dsn string) *gorm.DB {
	var err error
	// TranslateError so a unique-index violation comes back as
	// gorm.ErrDuplicatedKey, which is what the duplicate guard keys on.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	// Migration: This creates the tables in Postgres automatically
	log.Println("Running Migrations...")
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Template{},
		&models.SiteMapping{},
		&models.Application{},
	); err != nil {
		log.Fatal("Migration failed:", err)
	}
	return DB
}
