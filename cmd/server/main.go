package main

import (
	"log"
	"net/http"
	"os"

	"staff_transit/internal/cache"
	"staff_transit/internal/config"
	"staff_transit/internal/logger"
	"staff_transit/internal/middleware"
	"staff_transit/internal/queue"
	"staff_transit/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Optional seat-availability cache and event queue; the server runs
	// without them if Redis or RabbitMQ is unreachable.
	seats := cache.NewSeats(config.NewRedisClient())
	events := queue.NewPublisher()

	r := routes.SetupRouter(config.GetDB(), seats, events)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + port()
	log.Println("🚀 Server running at " + addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
