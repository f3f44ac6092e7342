package config

import (
	"fmt"
	"log"
	"os"

	"github.com/moom-ugrd-24f/poke-n-pump-server/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB connects to Postgres and migrates the schema. A failed connection is
// logged and DB stays nil; the server keeps running and request handlers
// report the store as unavailable.
func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Could not connect to database: %v", err)
		return
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Poke{},
	); err != nil {
		log.Printf("AutoMigrate failed: %v", err)
		return
	}

	DB = db
	log.Printf("Connected to database")
}
