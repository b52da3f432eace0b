// Command seed runs the database seeder for gymdesk.
package main

import (
	"flag"
	"log"

	"gymdesk/internal/config"
	"gymdesk/internal/database"
	"gymdesk/internal/seed"
)

func main() {
	numMembers := flag.Int("members", 50, "Number of members to create")
	numTrainers := flag.Int("trainers", 10, "Number of trainers to create")
	shouldClean := flag.Bool("clean", false, "Clean member/trainer/plan data before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d members, %d trainers, clean=%v\n", *numMembers, *numTrainers, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumMembers:  *numMembers,
		NumTrainers: *numTrainers,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
