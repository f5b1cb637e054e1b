package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/sijms/go-ora/v2" // Ensure go-ora driver is registered
)

// RunMigrations executes every *.up.sql file in migrationsDir in name order.
// Oracle has no golang-migrate driver, so the runner stays hand-rolled.
func RunMigrations(db *sql.DB, migrationsDir string) error {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %v", err)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".up.sql") {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %v", name, err)
		}

		// Oracle rejects multi-statement batches; run statements one by one.
		for _, stmt := range strings.Split(string(content), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %v", name, err)
			}
		}

		log.Printf("Executed migration: %s", name)
	}

	log.Println("Migrations completed successfully")
	return nil
}

// NewMigrateOracleDB opens a plain database/sql connection for migrations.
func NewMigrateOracleDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping database: %v", err)
	}

	return db, nil
}
