package main

import (
	"database/sql"
	"log"
	"os"

	"kisima-schools/app/config"
	"kisima-schools/app/database"
)

func main() {
	log.Println("Starting migration run...")

	config.Init()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Optional seed file, applied after the schema exists
	if len(os.Args) > 1 {
		executeSQLFile(db, os.Args[1])
	}

	log.Println("Migration completed successfully!")
}

func executeSQLFile(db *sql.DB, filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("Skipping %s: %v", filePath, err)
		return
	}

	log.Printf("Executing %s...", filePath)
	if _, err := db.Exec(string(content)); err != nil {
		log.Printf("Error executing %s: %v", filePath, err)
	} else {
		log.Printf("Successfully executed %s", filePath)
	}
}
