// Command main runs the database seeder for Hidden Gems.
package main

import (
	"flag"
	"log"

	"hiddengems/internal/config"
	"hiddengems/internal/database"
	"hiddengems/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numGems := flag.Int("gems", 60, "Number of gems to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d gems, clean=%v\n", *numUsers, *numGems, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *numUsers,
		NumGems:     *numGems,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
