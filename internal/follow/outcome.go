package follow

// Outcome classifies the result of a trigger.
type Outcome int

const (
	OutcomeIdle Outcome = iota
	OutcomeUnresolved
	OutcomeJoined
	OutcomeDisconnected
	OutcomeNoPermission
	OutcomeChannelFull
	OutcomeAlreadyThere
	OutcomeStayed
	OutcomeNotInVoice
	OutcomeJoinFailed
	OutcomeLeaveFailed
)

var outcomeMessages = map[Outcome]string{
	OutcomeJoined:       "Followed user into a new voice channel",
	OutcomeDisconnected: "Followed user left, disconnected",
	OutcomeNoPermission: "Insufficient permissions to enter the voice channel",
	OutcomeChannelFull:  "Channel is full",
	OutcomeAlreadyThere: "Already in the same channel",
	OutcomeStayed:       "Followed user left, but not following disconnect",
	OutcomeNotInVoice:   "Followed user is not in a voice channel",
	OutcomeJoinFailed:   "Failed to join the voice channel",
	OutcomeLeaveFailed:  "Failed to leave the voice channel",
}

// Message returns the fixed user-facing text, empty for silent outcomes.
func (o Outcome) Message() string {
	return outcomeMessages[o]
}

// Success reports whether the outcome is shown as a success.
func (o Outcome) Success() bool {
	return o == OutcomeJoined || o == OutcomeDisconnected
}

// Silent outcomes produce no notice.
func (o Outcome) Silent() bool {
	return o == OutcomeIdle || o == OutcomeUnresolved
}

// StringEmoji returns the marker used in notice embeds.
func (o Outcome) StringEmoji() string {
	switch {
	case o.Silent():
		return ""
	case o.Success():
		return "✅"
	default:
		return "⚠️"
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeUnresolved:
		return "unresolved"
	case OutcomeJoined:
		return "joined"
	case OutcomeDisconnected:
		return "disconnected"
	case OutcomeNoPermission:
		return "no_permission"
	case OutcomeChannelFull:
		return "channel_full"
	case OutcomeAlreadyThere:
		return "already_there"
	case OutcomeStayed:
		return "stayed"
	case OutcomeNotInVoice:
		return "not_in_voice"
	case OutcomeJoinFailed:
		return "join_failed"
	case OutcomeLeaveFailed:
		return "leave_failed"
	default:
		return "unknown"
	}
}
