package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/config"
	"github.com/keshon/voice-follow/internal/middleware"
	"github.com/keshon/voice-follow/internal/version"
	"github.com/keshon/voice-follow/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string             { return "help" }
func (c *HelpCommand) Description() string      { return "Get a list of available commands" }
func (c *HelpCommand) Group() string            { return "core" }
func (c *HelpCommand) Category() string         { return "🕯️ Information" }
func (c *HelpCommand) UserPermissions() []int64 { return []int64{} }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: buildHelpByCategory(cmd.DefaultRegistry.GetAll()),
		Color:       bot.EmbedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: version.AppDescription},
	}
	return bot.RespondEmbedEphemeral(context.Session, context.Event, embed)
}

func buildHelpByCategory(all []cmd.Command) string {
	categoryMap := make(map[string][]cmd.Command)
	for _, c := range all {
		meta, ok := command.Meta(c)
		if !ok {
			continue
		}
		categoryMap[meta.Category()] = append(categoryMap[meta.Category()], c)
	}

	cats := make([]string, 0, len(categoryMap))
	for cat := range categoryMap {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		wi, wj := config.CategoryWeights[cats[i]], config.CategoryWeights[cats[j]]
		if wi != wj {
			return wi < wj
		}
		return cats[i] < cats[j]
	})

	var sb strings.Builder
	for _, cat := range cats {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		// all is sorted by name already
		for _, c := range categoryMap[cat] {
			label := "/" + c.Name()
			if def := command.Definition(c); def != nil && def.Type == discordgo.UserApplicationCommand {
				label = "Apps → " + c.Name()
			}
			sb.WriteString(fmt.Sprintf("`%s` - %s\n", label, c.Description()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func init() {
	command.RegisterCommand(&HelpCommand{}, middleware.Defaults()...)
}
