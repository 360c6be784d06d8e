package voice

import (
	"fmt"
	"strings"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/follow"

	"github.com/bwmarrin/discordgo"
)

const (
	customTrigger  = "follow:trigger"
	customUnfollow = "follow:unfollow"
)

// statusPanel renders the follow indicator. Buttons are only offered while someone is followed.
func statusPanel(st follow.Status) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title: "Voice Follow",
		Color: bot.EmbedColor,
	}
	if !st.Following() {
		embed.Description = "Not following anyone.\nUse `/follow user` or right-click a member → **Apps → Toggle Follow**."
		embed.Fields = optionFields(st.Settings)
		return embed, nil
	}

	where := "not in voice"
	if st.UserChannelID != "" {
		where = fmt.Sprintf("<#%s>", st.UserChannelID)
	}
	me := "not connected"
	if st.BotChannelID != "" {
		me = fmt.Sprintf("<#%s>", st.BotChannelID)
	}
	embed.Description = fmt.Sprintf("Following <@%s>", st.FollowUserID)
	embed.Fields = append([]*discordgo.MessageEmbedField{
		{Name: "User is in", Value: where, Inline: true},
		{Name: "Bot is in", Value: me, Inline: true},
	}, optionFields(st.Settings)...)

	buttons := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Trigger", Style: discordgo.PrimaryButton, CustomID: customTrigger},
			discordgo.Button{Label: "Unfollow", Style: discordgo.DangerButton, CustomID: customUnfollow},
		}},
	}
	return embed, buttons
}

func optionFields(set follow.Settings) []*discordgo.MessageEmbedField {
	var sb strings.Builder
	for _, name := range follow.OptionNames {
		v, _ := set.Option(name)
		mark := "⬜"
		if v {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%s `%s`\n", mark, name)
	}
	notice := "_first channel a follow is set from_"
	if set.NoticeChannelID != "" {
		notice = fmt.Sprintf("<#%s>", set.NoticeChannelID)
	}
	return []*discordgo.MessageEmbedField{
		{Name: "Options", Value: sb.String()},
		{Name: "Notices", Value: notice},
	}
}

// outcomeEmbed is the reply to a manual trigger.
func outcomeEmbed(o follow.Outcome) *discordgo.MessageEmbed {
	switch o {
	case follow.OutcomeIdle:
		return &discordgo.MessageEmbed{Description: "Nothing to do: nobody is followed."}
	case follow.OutcomeUnresolved:
		return &discordgo.MessageEmbed{
			Description: "Couldn't find the followed user's voice channel.",
			Color:       bot.FailureColor,
		}
	}
	color := bot.FailureColor
	if o.Success() {
		color = bot.SuccessColor
	}
	return &discordgo.MessageEmbed{
		Description: o.StringEmoji() + " " + o.Message(),
		Color:       color,
	}
}
