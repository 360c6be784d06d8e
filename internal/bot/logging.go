package bot

import (
	"log"

	"github.com/keshon/voice-follow/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// LogCommand records a command execution to storage, resolving channel and guild names from state.
func LogCommand(s *discordgo.Session, store *storage.Storage, guildID, channelID, userID, username, commandName string) error {
	channel, err := s.State.Channel(channelID)
	if err != nil {
		channel, err = s.Channel(channelID)
		if err != nil {
			log.Println("[WARN] Failed to fetch channel:", err)
		}
	}
	channelName := ""
	if channel != nil {
		channelName = channel.Name
	}

	guild, err := s.State.Guild(guildID)
	if err != nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			log.Println("[WARN] Failed to fetch guild:", err)
		}
	}
	guildName := ""
	if guild != nil {
		guildName = guild.Name
	}

	return store.SetCommand(guildID, channelID, channelName, guildName, userID, username, commandName)
}
