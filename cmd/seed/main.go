// Command seed populates the development database with fake data.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 3, "posts per user")
	clean := flag.Bool("clean", false, "truncate tables first")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:     *users,
		PostsPerUser: *posts,
		ShouldClean:  *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
