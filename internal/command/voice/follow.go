package voice

import (
	"errors"
	"fmt"
	"log"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/follow"

	"github.com/bwmarrin/discordgo"
)

const (
	Group    = "follow"
	Category = "🎧 Voice"
)

// Who may steer the bot around voice channels.
var followPermissions = []int64{
	discordgo.PermissionVoiceMoveMembers,
	discordgo.PermissionManageChannels,
}

type FollowCommand struct {
	Follow *follow.Service
}

func (c *FollowCommand) Name() string        { return "follow" }
func (c *FollowCommand) Description() string { return "Keep the bot in the same voice channel as a user" }
func (c *FollowCommand) Group() string       { return Group }
func (c *FollowCommand) Category() string    { return Category }
func (c *FollowCommand) UserPermissions() []int64 {
	return followPermissions
}

func (c *FollowCommand) SlashDefinition() *discordgo.ApplicationCommand {
	var boolOpts []*discordgo.ApplicationCommandOption
	for _, name := range follow.OptionNames {
		boolOpts = append(boolOpts, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        name,
			Description: follow.OptionHelp(name),
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "user",
				Description: "Follow a user, or stop if they are already followed",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "Who to follow",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "trigger",
				Description: "Move to the followed user right now",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "unfollow",
				Description: "Stop following",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show who is followed and where",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "options",
				Description: "Change follow behaviour",
				Options:     boolOpts,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "notice-channel",
				Description: "Choose where follow notices are posted",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionChannel,
						Name:         "channel",
						Description:  "Text channel for notices",
						Required:     true,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					},
				},
			},
		},
	}
}

func (c *FollowCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context.Session
	e := context.Event

	options := e.ApplicationCommandData().Options
	if len(options) == 0 {
		return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "No subcommand provided.",
		})
	}

	sub := options[0]
	switch sub.Name {
	case "user":
		if len(sub.Options) == 0 {
			return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{Description: "No user provided."})
		}
		return toggleAndRespond(c.Follow, s, e, sub.Options[0].UserValue(nil).ID)
	case "trigger":
		return c.runTrigger(s, e)
	case "unfollow":
		return c.runUnfollow(s, e)
	case "status":
		st, err := c.Follow.Status(e.GuildID)
		if err != nil {
			return fmt.Errorf("failed to read follow status: %w", err)
		}
		embed, buttons := statusPanel(st)
		return bot.RespondPanel(s, e, embed, buttons)
	case "options":
		return c.runOptions(s, e, sub.Options)
	case "notice-channel":
		if len(sub.Options) == 0 {
			return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{Description: "No channel provided."})
		}
		channelID := sub.Options[0].ChannelValue(nil).ID
		if _, err := c.Follow.UpdateSettings(e.GuildID, func(set *follow.Settings) {
			set.NoticeChannelID = channelID
		}); err != nil {
			return fmt.Errorf("failed to set notice channel: %w", err)
		}
		return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Follow notices will be posted in <#%s>.", channelID),
			Color:       bot.EmbedColor,
		})
	default:
		return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Unknown subcommand: %s", sub.Name),
		})
	}
}

// Component handles the status panel buttons.
func (c *FollowCommand) Component(ctx *command.ComponentInteractionContext) error {
	s := ctx.Session
	e := ctx.Event

	switch e.MessageComponentData().CustomID {
	case customTrigger:
		return c.runTrigger(s, e)
	case customUnfollow:
		if _, err := c.Follow.Unfollow(e.GuildID); err != nil {
			return fmt.Errorf("failed to unfollow: %w", err)
		}
		st, err := c.Follow.Status(e.GuildID)
		if err != nil {
			return fmt.Errorf("failed to read follow status: %w", err)
		}
		embed, buttons := statusPanel(st)
		return bot.UpdatePanel(s, e, embed, buttons)
	}
	return nil
}

// runTrigger acknowledges first: joining a voice channel can outlast the interaction deadline.
func (c *FollowCommand) runTrigger(s *discordgo.Session, e *discordgo.InteractionCreate) error {
	return deferred(s, e, func() (*discordgo.MessageEmbed, error) {
		out, err := c.Follow.Trigger(e.GuildID)
		if err != nil {
			return nil, err
		}
		return outcomeEmbed(out), nil
	})
}

// deferred acknowledges the interaction, runs work and sends its embed as the followup.
// Errors are reported in the followup, since the interaction is already answered.
func deferred(s *discordgo.Session, e *discordgo.InteractionCreate, work func() (*discordgo.MessageEmbed, error)) error {
	if err := bot.RespondDeferredEphemeral(s, e); err != nil {
		return fmt.Errorf("failed to defer response: %w", err)
	}

	embed, err := work()
	if err != nil {
		log.Printf("[ERR] [%s] Follow command failed: %v", e.GuildID, err)
		embed = &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Error running command: %v", err),
			Color:       bot.FailureColor,
		}
	}
	if ferr := bot.FollowupEmbedEphemeral(s, e, embed); ferr != nil {
		log.Printf("[WARN] [%s] Failed to send followup: %v", e.GuildID, ferr)
	}
	return nil
}

func (c *FollowCommand) runUnfollow(s *discordgo.Session, e *discordgo.InteractionCreate) error {
	was, err := c.Follow.Unfollow(e.GuildID)
	if err != nil {
		return fmt.Errorf("failed to unfollow: %w", err)
	}
	msg := "Not following anyone."
	if was {
		msg = "Stopped following."
	}
	return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{Description: msg, Color: bot.EmbedColor})
}

func (c *FollowCommand) runOptions(s *discordgo.Session, e *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	changes := make(map[string]bool, len(opts))
	for _, o := range opts {
		changes[o.Name] = o.BoolValue()
	}

	var applyErr error
	set, err := c.Follow.UpdateSettings(e.GuildID, func(set *follow.Settings) {
		applyErr = applyOptions(set, changes)
	})
	if err != nil {
		return fmt.Errorf("failed to update follow options: %w", err)
	}
	if applyErr != nil {
		return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{Description: applyErr.Error()})
	}

	title := "Follow options"
	if len(changes) > 0 {
		title = "Follow options updated"
	}
	return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
		Title:  title,
		Color:  bot.EmbedColor,
		Fields: optionFields(set),
	})
}

// applyOptions sets every named option, stopping at the first unknown name.
func applyOptions(set *follow.Settings, changes map[string]bool) error {
	for _, name := range follow.OptionNames {
		if v, ok := changes[name]; ok {
			if err := set.SetOption(name, v); err != nil {
				return err
			}
		}
	}
	for name := range changes {
		if _, err := set.Option(name); err != nil {
			return err
		}
	}
	return nil
}

// toggleAndRespond defers because execute on follow may join a voice channel.
func toggleAndRespond(svc *follow.Service, s *discordgo.Session, e *discordgo.InteractionCreate, userID string) error {
	return deferred(s, e, func() (*discordgo.MessageEmbed, error) {
		following, out, err := svc.Toggle(e.GuildID, userID, e.ChannelID)
		switch {
		case errors.Is(err, follow.ErrFollowSelf):
			return &discordgo.MessageEmbed{Description: "I can't follow myself."}, nil
		case errors.Is(err, follow.ErrNoUser):
			return &discordgo.MessageEmbed{Description: "No user provided."}, nil
		case err != nil:
			return nil, fmt.Errorf("failed to toggle follow: %w", err)
		}
		return toggleEmbed(userID, following, out), nil
	})
}

func toggleMessage(userID string, following bool) string {
	if following {
		return fmt.Sprintf("Now following <@%s>.", userID)
	}
	return fmt.Sprintf("Stopped following <@%s>.", userID)
}

// toggleEmbed is the toggle reply, with the execute on follow outcome when there was one.
func toggleEmbed(userID string, following bool, out follow.Outcome) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Description: toggleMessage(userID, following),
		Color:       bot.EmbedColor,
	}
	if !out.Silent() {
		embed.Description += "\n" + out.StringEmoji() + " " + out.Message()
	}
	return embed
}
