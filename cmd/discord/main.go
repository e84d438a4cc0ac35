package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"barkeep/internal/ai"
	"barkeep/internal/bar"
	"barkeep/internal/catalog"
	"barkeep/internal/config"
	"barkeep/internal/discord"
	"barkeep/internal/mind"
	"barkeep/internal/server"
	"barkeep/internal/storage"

	// Command packages register themselves on import.
	_ "barkeep/internal/command/bar"
	_ "barkeep/internal/command/chat"
	_ "barkeep/internal/command/core"
	_ "barkeep/internal/command/find"
	_ "barkeep/internal/command/inventory"
)

func main() {
	cfg := config.New()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal("Failed to open datastore: ", err)
	}
	defer store.Close()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load drink catalog: ", err)
	}
	log.Printf("[INFO] Loaded %d drinks from %s", cat.Len(), cfg.CatalogPath)

	engine, err := bar.New(bar.Config{
		Threshold:  cfg.PourThreshold,
		PourChance: cfg.PourChance,
		Duplicates: bar.DuplicatePolicy(cfg.DuplicatePours),
		Weights:    bar.DefaultWeights,
	}, cat)
	if err != nil {
		log.Fatal("Failed to build reward engine: ", err)
	}

	provider, err := ai.DefaultProvider(cfg.AIProvider)
	if err != nil {
		log.Fatal("Failed to configure AI provider: ", err)
	}

	windows := mind.NewWindows(cfg.ContextWindow)
	limiter := ai.NewChatLimiter(cfg.ChatPerMinute, cfg.ChatCooldown)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.Run(ctx, cfg.KeepAliveAddr); err != nil {
			log.Println("[ERR] Keep-alive server:", err)
		}
	}()

	bot := discord.NewBot(cfg, store, cat, engine, windows, limiter, provider)
	if err := bot.Run(ctx); err != nil {
		log.Fatal("Bot stopped: ", err)
	}

	log.Println("[INFO] Bye.")
}
