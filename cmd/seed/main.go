// Command main runs the database seeder for Inkwell.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 0, "Number of users to create (overrides the plan)")
	numPosts := flag.Int("posts", 0, "Number of posts to create (overrides the plan)")
	planPath := flag.String("plan", "", "Path to a YAML seed plan")
	builtinsOnly := flag.Bool("builtins-only", false, "Only ensure the built-in groups exist")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *builtinsOnly {
		if err := seed.EnsureBuiltInGroups(db); err != nil {
			log.Fatalf("Built-in group seeding failed: %v", err)
		}
		log.Println("Built-in groups are in place.")
		return
	}

	plan := seed.DefaultPlan
	if *planPath != "" {
		plan, err = seed.LoadPlan(*planPath)
		if err != nil {
			log.Fatalf("Failed to load seed plan: %v", err)
		}
	}
	if *numUsers > 0 {
		plan.Users = *numUsers
	}
	if *numPosts > 0 {
		plan.Posts = *numPosts
	}

	seeder, err := seed.NewSeeder(db)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}
	if err := seeder.Run(plan); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// after Run so a clean wipe cannot take the built-ins with it
	if err := seed.EnsureBuiltInGroups(db); err != nil {
		log.Fatalf("Built-in group seeding failed: %v", err)
	}

	log.Printf("All done. Every generated user has the password %q.", seed.DemoPassword)
}
