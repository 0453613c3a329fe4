// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	var (
		users     = flag.Int("users", 0, "number of users to create (0 = default preset)")
		posts     = flag.Int("posts", 0, "posts per user (0 = default preset)")
		clear     = flag.Bool("clear", false, "remove all existing data before seeding")
		clearOnly = flag.Bool("clear-only", false, "remove all existing data and exit")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *clear || *clearOnly {
		if err := seed.ClearAll(db); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Cleared existing data")
		if *clearOnly {
			return
		}
	}

	opts := seed.DefaultOptions()
	if *users > 0 {
		opts.Users = *users
	}
	if *posts > 0 {
		opts.PostsPerUser = *posts
	}

	if err := seed.NewFactory(db, opts).Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
