package main

import (
	"context"
	"log"

	"github.com/andrejsk/placemark/internal/server"
	"github.com/andrejsk/placemark/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
