package main

import (
	"evently_backend/database"
	"evently_backend/internal/app"
	"evently_backend/internal/logger"
)

func main() {
	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	app.Run()
}
