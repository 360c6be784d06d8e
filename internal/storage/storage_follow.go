package storage

import (
	"github.com/keshon/voice-follow/internal/follow"
	st "github.com/keshon/voice-follow/internal/storagetypes"
)

// FollowSettings returns the stored follow settings, or the defaults for a new guild.
func (s *Storage) FollowSettings(guildID string) (follow.Settings, error) {
	record, err := s.view(guildID)
	if err != nil {
		return follow.Settings{}, err
	}
	if record.Follow == nil {
		return s.followDefaults, nil
	}
	return *record.Follow, nil
}

func (s *Storage) SetFollowSettings(guildID string, settings follow.Settings) error {
	return s.update(guildID, func(r *st.Record) error {
		r.Follow = &settings
		return nil
	})
}
