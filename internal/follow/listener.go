package follow

import "slices"

// HandleVoiceStates reacts to a batch of voice-state changes in one guild.
// Entries are handled in order; the batch is dropped when nobody is followed
// or the guild only wants manual triggers.
func (s *Service) HandleVoiceStates(guildID string, batch []VoiceStateChange) {
	unlock := s.lockVoice(guildID)
	defer unlock()

	set, ok := s.load(guildID)
	if !ok || set.ManualOnly || !set.Following() {
		return
	}

	me := s.host.CurrentUserID()
	for _, c := range batch {
		if !c.Moved() {
			continue
		}
		isMe := c.UserID == me

		if set.AutoMoveBack && isMe && c.ChannelID != "" && c.OldChannelID != "" {
			s.trigger(guildID, set, s.host.VoiceChannelOf(guildID, set.FollowUserID), true)
			continue
		}

		if set.ChannelFull && !isMe && c.ChannelID == "" && c.OldChannelID != "" &&
			c.OldChannelID != s.host.VoiceChannelOf(guildID, me) {
			if s.lastSeatFor(guildID, set.FollowUserID, c.OldChannelID) {
				s.trigger(guildID, set, c.OldChannelID, true)
				continue
			}
		}

		if c.UserID == set.FollowUserID {
			if c.ChannelID != "" {
				s.trigger(guildID, set, c.ChannelID, true)
			} else if c.OldChannelID != "" {
				s.trigger(guildID, set, "", true)
			}
		}
	}
}

// lastSeatFor reports whether channelID has exactly one free seat the bot cannot
// bypass, while the followed user is still inside it.
func (s *Service) lastSeatFor(guildID, followed, channelID string) bool {
	ch, ok := s.host.Channel(channelID)
	if !ok || ch.UserLimit == 0 {
		return false
	}
	occupants := s.host.Occupants(guildID, channelID)
	if len(occupants) != ch.UserLimit-1 {
		return false
	}
	if s.host.Can(guildID, channelID, PermMoveMembers) {
		return false
	}
	return slices.Contains(occupants, followed)
}
