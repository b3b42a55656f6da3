package db

import (
	"log"
	"os"

	"aiinasia/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=aiinasia port=5432 sslmode=disable TimeZone=Asia/Singapore"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.Comment{},
		&models.Reaction{},
		&models.PointLog{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedCategories()
}

func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return
	}

	categories := []models.Category{
		{Name: "News", Slug: "news", Description: "AI news and announcements across Asia"},
		{Name: "Business", Slug: "business", Description: "AI adoption, strategy and market coverage"},
		{Name: "Life", Slug: "life", Description: "How AI shows up in everyday life"},
		{Name: "Learning", Slug: "learning", Description: "Guides, prompts and tutorials"},
		{Name: "Opinion", Slug: "opinion", Description: "Columns and commentary"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", category.Name, err)
		}
	}
	log.Println("Initial categories created successfully")
}
