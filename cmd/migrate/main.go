package main

import (
	"log"
	"os"

	"notepad-api/internal/model"
	"notepad-api/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: Extensions (AutoMigrate doesn't handle these)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Note{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// 5. Foreign Keys (RESTRICT semantics AutoMigrate won't add on its own)
	log.Println("Step 3: Adding Foreign Key Constraints...")

	constraintSQL := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_categories_user') THEN
			ALTER TABLE categories ADD CONSTRAINT fk_categories_user
			FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE RESTRICT;
		END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_notes_user') THEN
			ALTER TABLE notes ADD CONSTRAINT fk_notes_user
			FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE RESTRICT;
		END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_notes_category') THEN
			ALTER TABLE notes ADD CONSTRAINT fk_notes_category
			FOREIGN KEY (category_id) REFERENCES categories (id) ON DELETE RESTRICT;
		END IF; END $$;`,
	}

	for _, sql := range constraintSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Error: Failed to add constraint: %v", err)
			os.Exit(1)
		}
	}

	color.Green("Migration completed successfully.")
}
