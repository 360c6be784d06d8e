package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/middleware"
	"github.com/keshon/voice-follow/internal/storage"
	"github.com/keshon/voice-follow/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type CommandsCommand struct{}

func (c *CommandsCommand) Name() string        { return "commands" }
func (c *CommandsCommand) Description() string { return "Manage or inspect commands" }
func (c *CommandsCommand) Group() string       { return "core" }
func (c *CommandsCommand) Category() string    { return "🛠️ Maintenance" }
func (c *CommandsCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionAdministrator}
}

const (
	discordMaxMessageLength = 2000
	codeLeftBlockWrapper    = "```md"
	codeRightBlockWrapper   = "```"
)

var maxContentLength = discordMaxMessageLength - len(codeLeftBlockWrapper) - len(codeRightBlockWrapper) - 2

func (c *CommandsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	groupChoices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, g := range uniqueGroups(cmd.DefaultRegistry.GetAll()) {
		groupChoices = append(groupChoices, &discordgo.ApplicationCommandOptionChoice{Name: g, Value: g})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "log",
				Description: "Review recently used commands",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Check which command groups are enabled or disabled",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "toggle",
				Description: "Enable or disable a group of commands",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "group",
						Description: "Choose command group to toggle",
						Required:    true,
						Choices:     groupChoices,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "state",
						Description: "Enable or disable",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Enable", Value: "enable"},
							{Name: "Disable", Value: "disable"},
						},
					},
				},
			},
		},
	}
}

func (c *CommandsCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event
	storage := context.Storage

	if len(event.ApplicationCommandData().Options) == 0 {
		return nil
	}

	sub := event.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "log":
		return c.runCmdLog(session, event, storage)
	case "status":
		return c.runCmdStatus(session, event, storage)
	case "toggle":
		return c.runCmdToggle(session, event, storage, sub.Options)
	default:
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("Unknown subcommand: %s", sub.Name),
		})
	}
}

func (c *CommandsCommand) runCmdLog(s *discordgo.Session, e *discordgo.InteractionCreate, storage *storage.Storage) error {
	records, err := storage.GetCommandsHistory(e.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch command logs: %w", err)
	}
	if len(records) == 0 {
		return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "No command logs found.",
		})
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%-19s\t%-15s\t%-12s\t%s\n", "# Datetime", "# Username", "# Channel", "# Command"))

	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		line := fmt.Sprintf("%-19s\t%-15s\t#%-12s\t/%s\n",
			r.Datetime.Format("2006-01-02 15:04:05"),
			r.Username,
			r.ChannelName,
			r.Command,
		)
		if builder.Len()+len(line) > maxContentLength {
			break
		}
		builder.WriteString(line)
	}

	return bot.RespondEphemeral(s, e, codeLeftBlockWrapper+"\n"+builder.String()+codeRightBlockWrapper)
}

func (c *CommandsCommand) runCmdStatus(s *discordgo.Session, e *discordgo.InteractionCreate, storage *storage.Storage) error {
	disabledGroups, err := storage.GetDisabledGroups(e.GuildID)
	if err != nil {
		return fmt.Errorf("failed to read disabled groups: %w", err)
	}
	enabled, disabled := splitGroups(uniqueGroups(cmd.DefaultRegistry.GetAll()), disabledGroups)

	embed := &discordgo.MessageEmbed{
		Title:       "Commands Status",
		Description: "Commands are grouped (e.g. core, follow). Use `/help` to view or `/commands toggle` to manage. Core group can't be disabled. Disabling `follow` also pauses following.",
		Color:       bot.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Disabled", Value: disabled, Inline: false},
			{Name: "Enabled", Value: enabled, Inline: false},
		},
	}
	return bot.RespondEmbedEphemeral(s, e, embed)
}

func (c *CommandsCommand) runCmdToggle(s *discordgo.Session, e *discordgo.InteractionCreate, storage *storage.Storage, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	var group, state string
	for _, opt := range opts {
		switch opt.Name {
		case "group":
			group = opt.StringValue()
		case "state":
			state = opt.StringValue()
		}
	}

	if group == middleware.CoreGroup && state == "disable" {
		return bot.RespondEmbedEphemeral(s, e, &discordgo.MessageEmbed{
			Description: "You can't disable the `core` group. It's the backbone of the bot.",
		})
	}

	embed := &discordgo.MessageEmbed{
		Footer: &discordgo.MessageEmbedFooter{Text: "Use /commands status to check which commands are disabled."},
	}

	if state == "disable" {
		if err := storage.DisableGroup(e.GuildID, group); err != nil {
			return fmt.Errorf("failed to disable group %q: %w", group, err)
		}
		embed.Description = fmt.Sprintf("Command group `%s` disabled.", group)
	} else {
		if err := storage.EnableGroup(e.GuildID, group); err != nil {
			return fmt.Errorf("failed to enable group %q: %w", group, err)
		}
		embed.Description = fmt.Sprintf("Command group `%s` enabled.", group)
	}

	bot.PublishSystemEvent(bot.SystemEvent{
		Type:    bot.SystemEventRefreshCommands,
		GuildID: e.GuildID,
		Target:  "group:" + group,
	})
	return bot.RespondEmbedEphemeral(s, e, embed)
}

func uniqueGroups(all []cmd.Command) []string {
	set := map[string]struct{}{}
	for _, c := range all {
		if meta, ok := command.Meta(c); ok && meta.Group() != "" {
			set[meta.Group()] = struct{}{}
		}
	}
	result := make([]string, 0, len(set))
	for group := range set {
		result = append(result, group)
	}
	sort.Strings(result)
	return result
}

// splitGroups renders known groups as enabled and disabled lists.
func splitGroups(groups, disabledGroups []string) (enabled, disabled string) {
	off := make(map[string]bool, len(disabledGroups))
	for _, g := range disabledGroups {
		off[g] = true
	}

	var on, down []string
	for _, group := range groups {
		if off[group] {
			down = append(down, fmt.Sprintf("`%s`", group))
		} else {
			on = append(on, fmt.Sprintf("`%s`", group))
		}
	}
	if len(down) == 0 {
		down = []string{"_none_"}
	}
	if len(on) == 0 {
		on = []string{"_none_"}
	}
	return strings.Join(on, ", "), strings.Join(down, ", ")
}

func init() {
	command.RegisterCommand(&CommandsCommand{}, middleware.Defaults()...)
}
