package discord

import (
	"log"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/follow"

	"github.com/bwmarrin/discordgo"
)

// Notify posts the outcome to the guild's notice channel and removes it after NoticeTTL.
func (h *sessionHost) Notify(n follow.Notice) {
	if n.ChannelID == "" {
		log.Printf("[INFO] [%s] %s (no notice channel)", n.GuildID, n.Outcome.Message())
		return
	}

	msg, err := bot.MessageEmbed(h.s, n.ChannelID, noticeEmbed(n.Outcome))
	if err != nil {
		log.Printf("[WARN] [%s] Failed to post follow notice: %v", n.GuildID, err)
		return
	}

	if h.cfg.NoticeTTL <= 0 {
		return
	}
	err = h.jobs.StartAfter("notice:"+msg.ID, h.cfg.NoticeTTL, func() error {
		return h.s.ChannelMessageDelete(msg.ChannelID, msg.ID)
	})
	if err != nil {
		log.Printf("[WARN] [%s] Failed to schedule notice cleanup: %v", n.GuildID, err)
	}
}

func noticeEmbed(o follow.Outcome) *discordgo.MessageEmbed {
	color := bot.FailureColor
	if o.Success() {
		color = bot.SuccessColor
	}
	return &discordgo.MessageEmbed{
		Description: o.StringEmoji() + " " + o.Message(),
		Color:       color,
	}
}
