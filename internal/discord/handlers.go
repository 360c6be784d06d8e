package discord

import (
	"fmt"
	"log"
	"strings"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/command/voice"
	"github.com/keshon/voice-follow/internal/follow"
	"github.com/keshon/voice-follow/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if b.cfg.IsGuildBlacklisted(g.ID) {
			b.leaveGuild(s, g.ID, g.Name)
		}
	}
	log.Printf("[INFO] ✅ Discord bot %v is running in %d guild(s).", r.User.Username, len(r.Guilds))
}

// onGuildCreate fires for every guild on connect and whenever the bot is added to one.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.cfg.IsGuildBlacklisted(g.ID) {
		b.leaveGuild(s, g.ID, g.Name)
		return
	}
	log.Printf("[INFO] Guild available: %s (%s)", g.ID, g.Name)

	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(g.ID); err != nil {
			log.Printf("[ERR] [%s] Failed to register commands: %v", g.ID, err)
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	// Reconnects replay GUILD_CREATE; resume only once per process.
	if _, done := b.resumed.LoadOrStore(g.ID, struct{}{}); done || !b.cfg.ResumeOnStart {
		return
	}
	if followPaused(b.storage, g.ID) {
		return
	}
	if o := b.follow.Resume(g.ID); o != follow.OutcomeIdle {
		log.Printf("[INFO] [%s] Resumed follow: %s", g.ID, o)
	}
}

func (b *Bot) leaveGuild(s *discordgo.Session, guildID, name string) {
	log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", guildID, name)
	if err := s.GuildLeave(guildID); err != nil {
		log.Printf("[ERR] Failed to leave guild %s: %v", guildID, err)
	}
}

// onVoiceStateUpdate feeds voice changes to the follow service. State is
// already updated when this runs, so occupancy reflects the change.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.VoiceState == nil || v.GuildID == "" || b.cfg.IsGuildBlacklisted(v.GuildID) {
		return
	}
	if followPaused(b.storage, v.GuildID) {
		return
	}
	b.follow.HandleVoiceStates(v.GuildID, []follow.VoiceStateChange{voiceChange(v)})
}

type groupChecker interface {
	IsGroupDisabled(guildID, group string) (bool, error)
}

// followPaused reports whether the guild turned off the follow command group.
// That pauses automatic moves too; a storage error counts as paused.
func followPaused(store groupChecker, guildID string) bool {
	disabled, err := store.IsGroupDisabled(guildID, voice.Group)
	if err != nil {
		log.Printf("[ERR] [%s] Failed to read disabled groups: %v", guildID, err)
		return true
	}
	return disabled
}

func voiceChange(v *discordgo.VoiceStateUpdate) follow.VoiceStateChange {
	c := follow.VoiceStateChange{
		UserID:    v.UserID,
		ChannelID: v.ChannelID,
	}
	if v.BeforeUpdate != nil {
		c.OldChannelID = v.BeforeUpdate.ChannelID
	}
	return c
}

// onInteractionCreate is called when an interaction is created
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID != "" && b.cfg.IsGuildBlacklisted(i.GuildID) {
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		c := cmd.DefaultRegistry.Get(data.Name)
		if c == nil {
			log.Printf("[WARN] Unknown command: %s", data.Name)
			return
		}

		var payload any
		switch data.CommandType {
		case discordgo.UserApplicationCommand:
			payload = &command.UserApplicationCommandContext{
				Session: s,
				Event:   i,
				Storage: b.storage,
				Config:  b.cfg,
				Target:  targetUser(data),
			}
		default:
			payload = &command.SlashInteractionContext{
				Session: s,
				Event:   i,
				Storage: b.storage,
				Config:  b.cfg,
			}
		}
		b.run(s, i, c, payload)

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		name, _, _ := strings.Cut(customID, ":")
		c := cmd.DefaultRegistry.Get(name)
		if c == nil {
			log.Printf("[WARN] No matching component for customID: %s", customID)
			return
		}
		b.run(s, i, c, &command.ComponentInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
			Config:  b.cfg,
		})

	default:
		log.Printf("[DEBUG] Unhandled interaction type: %d", i.Type)
	}
}

func (b *Bot) run(s *discordgo.Session, i *discordgo.InteractionCreate, c cmd.Command, payload any) {
	if err := c.Run(b.ctx, &cmd.Invocation{Data: payload}); err != nil {
		log.Printf("[ERR] Error running %s: %v", c.Name(), err)
		if rerr := bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Error running command: %v", err),
			Color:       bot.FailureColor,
		}); rerr != nil {
			log.Printf("[WARN] Failed to report error for %s: %v", c.Name(), rerr)
		}
	}
}

func targetUser(data discordgo.ApplicationCommandInteractionData) *discordgo.User {
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[data.TargetID]; ok {
			return u
		}
	}
	return &discordgo.User{ID: data.TargetID}
}
