// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/keshon/voice-follow/internal/command/core"

	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/command/voice"
	"github.com/keshon/voice-follow/internal/config"
	"github.com/keshon/voice-follow/internal/discord"
	"github.com/keshon/voice-follow/internal/middleware"
	"github.com/keshon/voice-follow/internal/storage"
	v "github.com/keshon/voice-follow/internal/version"

	"github.com/keshon/datastore"
)

func main() {
	log.Printf("[INFO] Starting %v bot (%s)...", v.AppName, v.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	store, err := storage.New(cfg.StoragePath, cfg.Follow.Settings(), datastore.WithSaveInterval(cfg.StorageSaveInterval))
	if err != nil {
		log.Fatal(err)
	}

	bot, err := discord.New(cfg, store)
	if err != nil {
		store.Close()
		log.Fatal(err)
	}
	command.RegisterCommand(&voice.FollowCommand{Follow: bot.Follow()}, middleware.Defaults()...)
	command.RegisterCommand(&voice.ToggleFollowCommand{Follow: bot.Follow()}, middleware.Defaults()...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	}

	if err := store.Close(); err != nil {
		log.Println("[WARN] Failed to close storage:", err)
	}
	log.Println("[INFO] Discord bot exited cleanly")
}
