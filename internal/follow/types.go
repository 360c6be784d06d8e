// Package follow keeps the bot in the same voice channel as one chosen user per guild.
//
// The package holds no Discord types. Everything it needs from the outside world goes
// through Host (queries and voice commands) and SettingsStore (persisted follow state).
package follow

// Settings is the persisted follow state of a single guild.
type Settings struct {
	FollowUserID    string `json:"follow_user_id"`
	ManualOnly      bool   `json:"manual_only"`
	AutoMoveBack    bool   `json:"auto_move_back"`
	ChannelFull     bool   `json:"channel_full"`
	FollowLeave     bool   `json:"follow_leave"`
	ExecuteOnFollow bool   `json:"execute_on_follow"`
	NoticeChannelID string `json:"notice_channel_id"`
}

// Following reports whether a user is currently followed.
func (s Settings) Following() bool {
	return s.FollowUserID != ""
}

// VoiceStateChange is one entry of a voice-state-update batch.
// Empty ChannelID or OldChannelID means "not in a channel".
type VoiceStateChange struct {
	UserID       string
	ChannelID    string
	OldChannelID string
}

// Moved reports whether the entry changes channel membership at all.
func (c VoiceStateChange) Moved() bool {
	return c.ChannelID != c.OldChannelID
}

type ChannelKind int

const (
	KindGuildVoice ChannelKind = iota
	KindStageVoice
	// KindDirectCall is a one-to-one or group call; joining it needs no guild permission.
	KindDirectCall
)

// Channel is the subset of a voice channel the trigger cares about.
type Channel struct {
	ID        string
	GuildID   string
	Kind      ChannelKind
	UserLimit int
}

type Permission int

const (
	PermConnect Permission = iota
	PermMoveMembers
)

func (p Permission) String() string {
	switch p {
	case PermConnect:
		return "connect"
	case PermMoveMembers:
		return "move_members"
	default:
		return "unknown"
	}
}

// Notice is a transient message shown to the guild after a trigger.
type Notice struct {
	GuildID   string
	ChannelID string
	Outcome   Outcome
}
