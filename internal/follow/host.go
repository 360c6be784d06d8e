package follow

// Host is what the follow logic consumes from the chat platform.
type Host interface {
	// CurrentUserID is the id of the account that does the following.
	CurrentUserID() string
	// VoiceChannelOf returns the user's voice channel in the guild, or "".
	VoiceChannelOf(guildID, userID string) string
	Channel(channelID string) (*Channel, bool)
	// Occupants lists the user ids currently connected to the channel.
	Occupants(guildID, channelID string) []string
	Can(guildID, channelID string, perm Permission) bool
	Join(guildID, channelID string) error
	Leave(guildID string) error
	Notify(n Notice)
}

// SettingsStore persists follow settings per guild.
type SettingsStore interface {
	FollowSettings(guildID string) (Settings, error)
	SetFollowSettings(guildID string, s Settings) error
}
