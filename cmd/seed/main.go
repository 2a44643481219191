package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"tourbook/config"
	"tourbook/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@tourbook.local"
	password := "password123"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, "Site Admin", email, hash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	tours := []struct {
		name, slug, difficulty, summary, cover string
		duration, groupSize                    int
		price                                  float64
	}{
		{"The Forest Hiker", "the-forest-hiker", "medium", "Breathtaking hike through the Canadian Banff National Park", "tour-1-cover.jpg", 5, 25, 397},
		{"The Sea Explorer", "the-sea-explorer", "medium", "Exploring the jaw-dropping US east coast by foot and by boat", "tour-2-cover.jpg", 7, 15, 497},
		{"The Snow Adventurer", "the-snow-adventurer", "difficult", "Exciting adventure in the snow with snowboarding and skiing", "tour-3-cover.jpg", 4, 10, 997},
		{"The City Wanderer", "the-city-wanderer", "easy", "Living the life of Wanderlust in the US' most beatiful cities", "tour-4-cover.jpg", 9, 20, 1197},
	}
	for _, t := range tours {
		var id string
		err = db.QueryRow(`
			INSERT INTO tours (name, slug, duration, max_group_size, difficulty, price, summary, image_cover)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (slug) DO UPDATE SET price=EXCLUDED.price
			RETURNING id
		`, t.name, t.slug, t.duration, t.groupSize, t.difficulty, t.price, t.summary, t.cover).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed tour %q: %v", t.name, err)
		}
		fmt.Printf("seeded tour: id=%s name=%q\n", id, t.name)
	}
}
