package main

import (
	"log"

	"github.com/andreyxaxa/Media-Processor/config"
	"github.com/andreyxaxa/Media-Processor/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("config error: %s", err)
	}

	app.Run(cfg)
}
