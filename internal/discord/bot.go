package discord

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/config"
	"github.com/keshon/voice-follow/internal/follow"
	"github.com/keshon/voice-follow/internal/storage"
	"github.com/keshon/voice-follow/pkg/jobmgr"
	"github.com/keshon/voice-follow/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
)

// Bot is a Discord bot
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	storage *storage.Storage
	follow  *follow.Service
	jobs    *jobmgr.Manager
	limiter *retrylimit.AdaptiveLimiter
	cache   commandCache

	ctx     context.Context
	resumed sync.Map // guildID -> struct{}
}

// New prepares the session and the follow service. Nothing connects until Run.
func New(cfg *config.Config, store *storage.Storage) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	b := &Bot{
		dg:      dg,
		cfg:     cfg,
		storage: store,
		jobs:    jobmgr.NewManager(nil),
		limiter: retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
		cache:   commandCache{dir: cfg.CommandCacheDir},
		ctx:     context.Background(),
	}
	b.follow = follow.New(newSessionHost(dg, cfg, b.jobs), store)
	return b, nil
}

// Follow exposes the follow service for command registration.
func (b *Bot) Follow() *follow.Service {
	return b.follow
}

// Run connects to Discord and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	b.configureIntents()
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onGuildCreate)
	b.dg.AddHandler(b.onInteractionCreate)
	b.dg.AddHandler(b.onVoiceStateUpdate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	go b.handleSystemEvents(ctx)

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	b.jobs.StopAll()
	b.disconnectVoice()
	return nil
}

// configureIntents configures the Discord intents
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMembers
}

func (b *Bot) disconnectVoice() {
	b.dg.RLock()
	conns := make([]*discordgo.VoiceConnection, 0, len(b.dg.VoiceConnections))
	for _, vc := range b.dg.VoiceConnections {
		conns = append(conns, vc)
	}
	b.dg.RUnlock()

	for _, vc := range conns {
		if err := vc.Disconnect(); err != nil {
			log.Printf("[WARN] [%s] Failed to disconnect voice: %v", vc.GuildID, err)
		}
	}
}

func (b *Bot) handleSystemEvents(ctx context.Context) {
	for {
		select {
		case evt := <-bot.SystemEvents():
			if evt.Type == bot.SystemEventRefreshCommands {
				log.Printf("[INFO] [%s] Refreshing commands (target: %s)", evt.GuildID, evt.Target)
				if err := b.registerCommands(evt.GuildID); err != nil {
					log.Printf("[ERR] [%s] Failed to refresh commands: %v", evt.GuildID, err)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
