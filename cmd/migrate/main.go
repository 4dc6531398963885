// Command migrate applies the database schema for Hidden Gems.
package main

import (
	"fmt"
	"log"

	"hiddengems/internal/config"
	"hiddengems/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	// Connect skips AutoMigrate in production; this command runs it
	// explicitly regardless of environment.
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log.Println("migrations applied")
	return nil
}
