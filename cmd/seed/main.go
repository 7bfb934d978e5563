package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/container"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

type seedUser struct {
	In    application.CreateUserInput
	Posts []application.CreatePostInput
}

var seedData = []seedUser{
	{
		In: application.CreateUserInput{Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com"},
		Posts: []application.CreatePostInput{
			{Title: "Notes on the engine", Body: "The engine might compose elaborate pieces of music."},
			{Title: "On loops", Body: "A cycle of operations may be repeated any number of times."},
		},
	},
	{
		In: application.CreateUserInput{Name: "Alan Turing", Username: "alan_t", Email: "alan@example.com"},
		Posts: []application.CreatePostInput{
			{Title: "Can machines think?", Body: "I propose to consider the question of the imitation game."},
		},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	c := container.New(cfg, logger)
	release, err := c.OpenStorage(ctx, true)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer release()

	users := application.NewUserService(c.Users, c.Posts, logger)
	posts := application.NewPostService(c.Posts, nil, nil, logger)

	for _, su := range seedData {
		u, err := users.Create(ctx, su.In)
		if apperror.Is(err, apperror.KindConflict) {
			// already seeded
			fmt.Printf("skip existing user %s\n", su.In.Email)
			continue
		}
		if err != nil {
			log.Fatalf("seed user %s: %v", su.In.Email, err)
		}
		for _, p := range su.Posts {
			if _, err := posts.Create(ctx, u.ID, p); err != nil {
				log.Fatalf("seed post %q: %v", p.Title, err)
			}
		}
		fmt.Printf("seeded user: id=%d username=%s posts=%d\n", u.ID, u.Username, len(su.Posts))
	}
}
