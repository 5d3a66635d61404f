// Command seed fills an empty database with a starter catalogue of games
// and tags so the browse pages have something to show. Safe to rerun; it
// skips seeding when the games table already has rows.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/videogamed/videogamed/internal/config"
	"github.com/videogamed/videogamed/internal/database"
	"github.com/videogamed/videogamed/internal/model"
	"github.com/videogamed/videogamed/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	games := repository.NewGameRepo(db)
	tags := repository.NewTagRepo(db)

	existing, err := games.List(ctx)
	if err != nil {
		log.Fatalf("seed: list games: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("seed: games table already has %d rows, nothing to do", len(existing))
		return
	}

	catalogue := []model.Game{
		{Title: "Hollow Knight", Description: "Descend into a sprawling underground kingdom of insects and heroes.", Developer: "Team Cherry", ReleaseYear: 2017},
		{Title: "Celeste", Description: "Climb the mountain. A tight platformer about anxiety and perseverance.", Developer: "Extremely OK Games", ReleaseYear: 2018},
		{Title: "Outer Wilds", Description: "An open world mystery about a solar system trapped in a time loop.", Developer: "Mobius Digital", ReleaseYear: 2019},
		{Title: "Hades", Description: "Defy the god of the dead in a rogue-like dungeon crawler.", Developer: "Supergiant Games", ReleaseYear: 2020},
		{Title: "Stardew Valley", Description: "Inherit your grandfather's old farm plot and build a new life.", Developer: "ConcernedApe", ReleaseYear: 2016},
		{Title: "Disco Elysium", Description: "A detective RPG with no combat and an unprecedented amount of dialogue.", Developer: "ZA/UM", ReleaseYear: 2019},
	}
	for i := range catalogue {
		if err := games.Create(ctx, &catalogue[i]); err != nil {
			log.Fatalf("seed: create game %q: %v", catalogue[i].Title, err)
		}
	}

	descriptions := []string{"Platformer", "RPG", "Roguelike", "Adventure", "Indie", "Simulation"}
	seeded := make([]model.Tag, 0, len(descriptions))
	for _, d := range descriptions {
		tag := model.Tag{Description: d}
		if err := tags.Create(ctx, &tag); err != nil {
			log.Fatalf("seed: create tag %q: %v", d, err)
		}
		seeded = append(seeded, tag)
	}

	// A few starter associations so game pages are not bare.
	pairs := []struct{ game, tag int }{
		{0, 0}, {0, 4}, // Hollow Knight: Platformer, Indie
		{1, 0}, {1, 4}, // Celeste
		{2, 3}, // Outer Wilds: Adventure
		{3, 2}, // Hades: Roguelike
		{4, 5}, {4, 4}, // Stardew Valley
		{5, 1}, // Disco Elysium: RPG
	}
	for _, p := range pairs {
		if err := tags.Attach(ctx, seeded[p.tag].ID, catalogue[p.game].ID); err != nil {
			log.Fatalf("seed: attach tag: %v", err)
		}
	}

	log.Printf("seed: inserted %d games and %d tags", len(catalogue), len(seeded))
}
