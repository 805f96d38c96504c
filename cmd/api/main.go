package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"chat-backend/cmd"
	"chat-backend/internal/api"
	"chat-backend/internal/database"
	"chat-backend/internal/relay"
)

type APIConfig struct {
	DatabaseURL  string `env:"DATABASE_URL,notEmpty,required"`
	LLMProvider  string `env:"LLM_PROVIDER" envDefault:"googleai"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	ChatModel    string `env:"CHAT_MODEL" envDefault:"gemini-2.0-flash-001"`
	ChunkDelayMs int    `env:"CHUNK_DELAY_MS" envDefault:"10"`
	APIPort      string `env:"API_PORT" envDefault:"8000"`
}

func newGenerator(cfg APIConfig) (relay.Generator, error) {
	if cfg.LLMProvider == "openai" {
		return relay.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.ChatModel), nil
	}
	return relay.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.ChatModel)
}

func main() {
	log.Println("Starting API Server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		log.Fatalf("Failed to create %s generator: %v", cfg.LLMProvider, err)
	}

	// --- Chi Router Setup ---
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	chatRelay := relay.NewRelay(generator, time.Duration(cfg.ChunkDelayMs)*time.Millisecond)
	chatService := api.NewChatService(db, chatRelay, cfg.ChatModel)
	chatService.AddRoutes(r)

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
