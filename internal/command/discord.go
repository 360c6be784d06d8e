package command

import (
	"context"

	"github.com/keshon/voice-follow/internal/config"
	"github.com/keshon/voice-follow/internal/storage"
	"github.com/keshon/voice-follow/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Discord-specific contexts, passed as cmd.Invocation.Data.

type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Args    []string
	Storage *storage.Storage
	Config  *config.Config
}

type ComponentInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Config  *config.Config
}

// UserApplicationCommandContext is a context-menu command run on a user.
type UserApplicationCommandContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Config  *config.Config
	Target  *discordgo.User
}

// Providers describe how a command is registered with Discord.

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ContextMenuProvider interface {
	ContextDefinition() *discordgo.ApplicationCommand
}

type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

// DiscordMeta lets middleware read Discord-only metadata through cmd.Root.
type DiscordMeta interface {
	Group() string
	Category() string
	UserPermissions() []int64
}

// DiscordCommand is what individual Discord commands implement.
type DiscordCommand interface {
	Name() string
	Description() string
	Group() string
	Category() string
	UserPermissions() []int64
	Run(ctx interface{}) error
}

// DiscordAdapter puts a DiscordCommand into the cmd registry.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string             { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string      { return a.Cmd.Description() }
func (a *DiscordAdapter) Group() string            { return a.Cmd.Group() }
func (a *DiscordAdapter) Category() string         { return a.Cmd.Category() }
func (a *DiscordAdapter) UserPermissions() []int64 { return a.Cmd.UserPermissions() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	if c, ok := inv.Data.(*ComponentInteractionContext); ok {
		return a.Component(c)
	}
	return a.Cmd.Run(inv.Data)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (a *DiscordAdapter) ContextDefinition() *discordgo.ApplicationCommand {
	if cp, ok := a.Cmd.(ContextMenuProvider); ok {
		return cp.ContextDefinition()
	}
	return nil
}

func (a *DiscordAdapter) Component(ctx *ComponentInteractionContext) error {
	if ch, ok := a.Cmd.(ComponentInteractionHandler); ok {
		return ch.Component(ctx)
	}
	return nil
}

// RegisterCommand wraps discordCmd with mws and adds it to the default registry.
func RegisterCommand(discordCmd DiscordCommand, mws ...cmd.Middleware) {
	c := cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...)
	cmd.DefaultRegistry.Register(c)
}

// Meta returns the Discord metadata of a registered command, if it has any.
func Meta(c cmd.Command) (DiscordMeta, bool) {
	m, ok := cmd.Root(c).(DiscordMeta)
	return m, ok
}

// Definition returns the application command definition of c, slash first.
func Definition(c cmd.Command) *discordgo.ApplicationCommand {
	root := cmd.Root(c)
	if sp, ok := root.(SlashProvider); ok {
		if def := sp.SlashDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.ChatApplicationCommand
			}
			return def
		}
	}
	if cp, ok := root.(ContextMenuProvider); ok {
		if def := cp.ContextDefinition(); def != nil {
			if def.Type == 0 {
				def.Type = discordgo.UserApplicationCommand
			}
			return def
		}
	}
	return nil
}

// InteractionUser returns who triggered an interaction, in a guild or in DMs.
func InteractionUser(e *discordgo.InteractionCreate) *discordgo.User {
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User
	}
	if e.User != nil {
		return e.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}
