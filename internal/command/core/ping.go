package core

import (
	"fmt"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct{}

func (c *PingCommand) Name() string             { return "ping" }
func (c *PingCommand) Description() string      { return "Check bot latency" }
func (c *PingCommand) Group() string            { return "core" }
func (c *PingCommand) Category() string         { return "🕯️ Information" }
func (c *PingCommand) UserPermissions() []int64 { return []int64{} }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *PingCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	latency := context.Session.HeartbeatLatency().Milliseconds()
	return bot.RespondEmbedEphemeral(context.Session, context.Event, &discordgo.MessageEmbed{
		Title:       "Pong! 🏓",
		Description: fmt.Sprintf("Latency: %dms", latency),
		Color:       bot.EmbedColor,
	})
}

func init() {
	command.RegisterCommand(&PingCommand{}, middleware.Defaults()...)
}
