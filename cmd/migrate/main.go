package main

import (
	"flag"
	"log"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	migrationsDir := flag.String("dir", "database/migrations", "directory containing *.up.sql files")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewMigrateOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, *migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}
