package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/afyasync/afyasync/backend/internal/auth"
	"github.com/afyasync/afyasync/backend/internal/config"
	"github.com/afyasync/afyasync/backend/internal/handler"
	"github.com/afyasync/afyasync/backend/internal/model/profile"
	aiservice "github.com/afyasync/afyasync/backend/internal/service/ai"
	"github.com/afyasync/afyasync/backend/internal/service/conversation"
	"github.com/afyasync/afyasync/backend/internal/service/session"
	wellnessservice "github.com/afyasync/afyasync/backend/internal/service/wellness"
	"github.com/afyasync/afyasync/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Open the durable store; an empty STORAGE_PATH keeps everything in memory.
	var kv storage.KV
	if cfg.Storage.Path != "" {
		kv, err = storage.OpenPebble(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("failed to open storage at %s: %v", cfg.Storage.Path, err)
		}
		log.Printf("durable storage opened at %s", cfg.Storage.Path)
	} else {
		kv = storage.NewMemory()
		log.Println("STORAGE_PATH not set, state will not survive restarts")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Printf("failed to close storage: %v", err)
		}
	}()

	registry := auth.NewRegistry()
	sessions := session.NewStore(kv, cfg.Chat.RetentionLimit, cfg.Chat.DefaultLanguage)
	wellnessSvc := wellnessservice.NewService(kv)

	// Initialize AI service
	var aiSvc *aiservice.Service
	if cfg.AI.Enabled() {
		aiSvc, err = aiservice.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check the Ark environment variables")
		} else {
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, skipping AI initialization")
	}

	// Without a model every turn takes the fallback path, so the chat surface
	// stays up while credentials are being sorted out.
	var responder conversation.Responder
	if aiSvc != nil {
		responder = aiSvc
	} else {
		responder = conversation.ResponderFunc(func(context.Context, string, string, []conversation.HistoryTurn, *profile.Hints) (string, error) {
			return "", errors.New("responder not configured")
		})
	}

	orchestrator := conversation.New(sessions, responder, conversation.Config{
		HistoryLimit:     cfg.Chat.HistoryLimit,
		ResponderTimeout: cfg.Chat.ResponderTimeout,
		DefaultLanguage:  cfg.Chat.DefaultLanguage,
		OnCrisis: func(identity string) {
			log.Printf("[crisis] escalation for identity=%s", identity)
		},
		Hints:         wellnessSvc.Hints,
		IdentityValid: registry.Valid,
	})

	router := handler.NewRouter(registry, sessions, orchestrator, wellnessSvc, aiSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("AfyaSync backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
