package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideacrafter/ideacrafter/internal/chat"
	"github.com/ideacrafter/ideacrafter/internal/config"
	"github.com/ideacrafter/ideacrafter/internal/events"
	"github.com/ideacrafter/ideacrafter/internal/handoff"
	"github.com/ideacrafter/ideacrafter/internal/llm"
	"github.com/ideacrafter/ideacrafter/internal/logger"
	"github.com/ideacrafter/ideacrafter/internal/repository"
	"github.com/ideacrafter/ideacrafter/internal/search"
	"github.com/ideacrafter/ideacrafter/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		logger.L.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	conversations, err := repository.NewSQLiteConversationRepo(db)
	if err != nil {
		logger.L.Error("failed to initialize conversation store", "error", err)
		os.Exit(1)
	}
	profiles := repository.NewSQLiteProfileRepo(db)

	advisor := llm.NewAdvisor(llm.NewClient(cfg.LLM), cfg.LLM)

	handoffStore, err := handoff.Open(cfg.Handoff.Path)
	if err != nil {
		logger.L.Error("failed to open handoff store", "path", cfg.Handoff.Path, "error", err)
		os.Exit(1)
	}
	defer handoffStore.Close()

	var publisher events.Publisher = events.Noop{}
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.Connect(cfg.NATS.URL)
		if err != nil {
			logger.L.Warn("NATS unavailable, events disabled", "url", cfg.NATS.URL, "error", err)
		} else {
			publisher = natsPublisher
			defer natsPublisher.Close()
		}
	}

	app := server.New(server.Deps{
		Completer:     advisor,
		Conversations: conversations,
		Profiles:      profiles,
		Search:        search.Select(cfg.Search),
		Handoff:       handoffStore,
		Events:        publisher,
		ChatOptions:   chat.Options{},
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.L.Info("starting server", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.L.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.L.Error("shutdown error", "error", err)
	}
	logger.L.Info("server stopped")
}
