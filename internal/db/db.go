package db

import (
	"os"

	"molin/internal/models"
	"molin/internal/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=molin port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	log.Info().Msg("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.Category{},
		&models.Post{},
		&models.PostCategory{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Msg("Database migration completed")

	// 开发环境下填充示例数据
	if os.Getenv("APP_ENV") == "development" {
		seedBlog()
	}
}

func seedBlog() {
	// 已有数据就跳过
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Info().Msg("Blog already seeded, skipping")
		return
	}

	categories := []models.Category{
		{Name: "Technology", Description: "Posts about technology, programming, and software development"},
		{Name: "Lifestyle", Description: "Personal stories, lifestyle tips, and general musings"},
		{Name: "Tutorials", Description: "Step-by-step guides and how-to articles"},
	}
	for i := range categories {
		categories[i].Slug = utils.GenerateSlug(categories[i].Name)
		if err := DB.Create(&categories[i]).Error; err != nil {
			log.Error().Err(err).Str("name", categories[i].Name).Msg("Failed to create category")
			return
		}
	}

	posts := []models.Post{
		{
			Title:     "Getting Started with Next.js 15",
			Content:   "Next.js 15 brings exciting new features including improved performance, better developer experience, and enhanced TypeScript support. In this post, we'll explore the key changes and how to migrate your existing applications.",
			Published: true,
		},
		{
			Title:     "Building a Modern Blog with Drizzle ORM",
			Content:   "Drizzle ORM is a lightweight and performant TypeScript ORM that's perfect for modern web applications. Learn how to set up Drizzle with PostgreSQL and create a robust blog system with proper relationships and migrations.",
			Published: true,
		},
		{
			Title:     "My Journey into Software Development",
			Content:   "Five years ago I wrote my first line of code. This is a reflection on the habits, resources, and mistakes that shaped the way I build software today.",
			Published: false,
		},
	}
	for i := range posts {
		posts[i].Slug = utils.GenerateSlug(posts[i].Title)
		if err := DB.Create(&posts[i]).Error; err != nil {
			log.Error().Err(err).Str("title", posts[i].Title).Msg("Failed to create post")
			return
		}
	}

	// 示例关联：前两篇挂技术分类，第二篇同时挂教程
	links := []models.PostCategory{
		{PostID: posts[0].ID, CategoryID: categories[0].ID},
		{PostID: posts[1].ID, CategoryID: categories[0].ID},
		{PostID: posts[1].ID, CategoryID: categories[2].ID},
		{PostID: posts[2].ID, CategoryID: categories[1].ID},
	}
	if err := DB.Create(&links).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create post categories")
		return
	}

	log.Info().Msg("Initial blog data created successfully")
}
