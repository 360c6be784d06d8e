package follow

import (
	"fmt"
	"log"
)

// Trigger moves the bot into the followed user's current channel,
// or resolves the "user left" case when they are not in voice.
// It is the manual trigger: no notice is posted, the caller reports the outcome.
func (s *Service) Trigger(guildID string) (Outcome, error) {
	unlock := s.lockVoice(guildID)
	defer unlock()

	set, err := s.Settings(guildID)
	if err != nil {
		return OutcomeIdle, fmt.Errorf("failed to load follow settings: %w", err)
	}
	return s.trigger(guildID, set, s.host.VoiceChannelOf(guildID, set.FollowUserID), false), nil
}

// TriggerInto runs the trigger against an explicit target and posts the notice.
// An empty target means the followed user has no channel.
func (s *Service) TriggerInto(guildID, channelID string) Outcome {
	unlock := s.lockVoice(guildID)
	defer unlock()

	set, ok := s.load(guildID)
	if !ok {
		return OutcomeIdle
	}
	return s.trigger(guildID, set, channelID, true)
}

// trigger must be called with the voice lock held.
func (s *Service) trigger(guildID string, set Settings, target string, notify bool) Outcome {
	if !set.Following() {
		return OutcomeIdle
	}

	out := s.resolve(guildID, set, target)
	if out == OutcomeUnresolved {
		log.Printf("[WARN] [%s] Could not resolve voice channel %s", guildID, target)
	}
	if notify && !out.Silent() {
		s.host.Notify(Notice{GuildID: guildID, ChannelID: set.NoticeChannelID, Outcome: out})
	}
	return out
}

func (s *Service) resolve(guildID string, set Settings, target string) Outcome {
	current := s.host.VoiceChannelOf(guildID, s.host.CurrentUserID())

	switch {
	case target != "" && target == current:
		return OutcomeAlreadyThere

	case target != "":
		ch, ok := s.host.Channel(target)
		if !ok {
			return OutcomeUnresolved
		}
		if ch.Kind != KindDirectCall && !s.host.Can(guildID, target, PermConnect) {
			return OutcomeNoPermission
		}
		if ch.UserLimit != 0 &&
			len(s.host.Occupants(guildID, target)) >= ch.UserLimit &&
			!s.host.Can(guildID, target, PermMoveMembers) {
			return OutcomeChannelFull
		}
		if err := s.host.Join(guildID, target); err != nil {
			log.Printf("[ERR] [%s] Failed to join voice channel %s: %v", guildID, target, err)
			return OutcomeJoinFailed
		}
		log.Printf("[DONE] [%s] Joined voice channel %s after %s", guildID, target, set.FollowUserID)
		return OutcomeJoined

	case current != "":
		if !set.FollowLeave {
			return OutcomeStayed
		}
		if err := s.host.Leave(guildID); err != nil {
			log.Printf("[ERR] [%s] Failed to leave voice channel %s: %v", guildID, current, err)
			return OutcomeLeaveFailed
		}
		log.Printf("[DONE] [%s] Left voice channel %s after %s", guildID, current, set.FollowUserID)
		return OutcomeDisconnected

	default:
		return OutcomeNotInVoice
	}
}
