// Package middleware holds the Discord-side decorators commands are wrapped with.
package middleware

import (
	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/config"
	"github.com/keshon/voice-follow/internal/storage"
	"github.com/keshon/voice-follow/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// interaction is the part every interaction context has in common.
type interaction struct {
	session *discordgo.Session
	event   *discordgo.InteractionCreate
	storage *storage.Storage
	config  *config.Config
}

func fromData(data any) (interaction, bool) {
	switch v := data.(type) {
	case *command.SlashInteractionContext:
		return interaction{v.Session, v.Event, v.Storage, v.Config}, true
	case *command.ComponentInteractionContext:
		return interaction{v.Session, v.Event, v.Storage, v.Config}, true
	case *command.UserApplicationCommandContext:
		return interaction{v.Session, v.Event, v.Storage, v.Config}, true
	}
	return interaction{}, false
}

func (i interaction) reply(msg string) {
	_ = bot.RespondEmbedEphemeral(i.session, i.event, &discordgo.MessageEmbed{Description: msg})
}

// Defaults is the stack guild commands are registered with.
func Defaults() []cmd.Middleware {
	return []cmd.Middleware{
		WithGroupAccessCheck(),
		WithGuildOnly(),
		WithUserPermissionCheck(),
		WithCommandLogger(),
	}
}
