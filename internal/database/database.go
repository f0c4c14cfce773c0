package database

import (
	"log"

	"studentboard/internal/config"
	"studentboard/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the local sqlite store, or postgres when DB_URL is set.
func InitDB() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	if config.DBURL != "" {
		db, err = gorm.Open(postgres.Open(config.DBURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(config.DBPath), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("Failed to connect to the database:", err)
	}

	// Auto-migrate the Student table
	if err := db.AutoMigrate(&model.Student{}); err != nil {
		log.Fatal("Failed to auto-migrate the database:", err)
	}

	return db
}
