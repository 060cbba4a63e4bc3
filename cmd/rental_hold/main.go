package main

import (
	"log"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/app"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}

	if err = application.Run(); err != nil {
		log.Fatalf("app run: %v", err)
	}
}
