package users

import (
	"log"

	"github.com/comp2537/web-portal/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "portal"); err != nil {
		log.Fatal("Failed to ensure schema portal: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}, &Gallery{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
