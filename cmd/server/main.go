package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/prathm201999/auth-service/internal/server"
	"github.com/prathm201999/auth-service/internal/server/config"
)

func main() {

	// a missing .env is fine; the environment may be set directly
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
