package voice

import (
	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/follow"

	"github.com/bwmarrin/discordgo"
)

// ToggleFollowCommand is the "Toggle Follow" entry of a member's context menu.
type ToggleFollowCommand struct {
	Follow *follow.Service
}

func (c *ToggleFollowCommand) Name() string        { return "Toggle Follow" }
func (c *ToggleFollowCommand) Description() string { return "Follow or unfollow this user" }
func (c *ToggleFollowCommand) Group() string       { return Group }
func (c *ToggleFollowCommand) Category() string    { return Category }
func (c *ToggleFollowCommand) UserPermissions() []int64 {
	return followPermissions
}

func (c *ToggleFollowCommand) ContextDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name: c.Name(),
		Type: discordgo.UserApplicationCommand,
	}
}

func (c *ToggleFollowCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.UserApplicationCommandContext)
	if !ok || context.Target == nil {
		return nil
	}
	return toggleAndRespond(c.Follow, context.Session, context.Event, context.Target.ID)
}
