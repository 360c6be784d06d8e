package storage

import (
	"slices"
	"time"

	st "github.com/keshon/voice-follow/internal/storagetypes"
)

func (s *Storage) DisableGroup(guildID, group string) error {
	return s.update(guildID, func(r *st.Record) error {
		if !slices.Contains(r.CommandsDisabled, group) {
			r.CommandsDisabled = append(r.CommandsDisabled, group)
		}
		return nil
	})
}

func (s *Storage) EnableGroup(guildID, group string) error {
	return s.update(guildID, func(r *st.Record) error {
		r.CommandsDisabled = slices.DeleteFunc(r.CommandsDisabled, func(g string) bool { return g == group })
		return nil
	})
}

func (s *Storage) IsGroupDisabled(guildID, group string) (bool, error) {
	record, err := s.view(guildID)
	if err != nil {
		return false, err
	}
	return slices.Contains(record.CommandsDisabled, group), nil
}

func (s *Storage) GetDisabledGroups(guildID string) ([]string, error) {
	record, err := s.view(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsDisabled, nil
}

// SetCommand appends a command run to the guild history, keeping the newest entries.
func (s *Storage) SetCommand(guildID, channelID, channelName, guildName, userID, username, commandName string) error {
	return s.update(guildID, func(r *st.Record) error {
		r.CommandsHistory = append(r.CommandsHistory, st.CommandHistory{
			ChannelID:   channelID,
			ChannelName: channelName,
			GuildName:   guildName,
			UserID:      userID,
			Username:    username,
			Command:     commandName,
			Datetime:    time.Now(),
		})
		if len(r.CommandsHistory) > commandHistoryLimit {
			r.CommandsHistory = r.CommandsHistory[len(r.CommandsHistory)-commandHistoryLimit:]
		}
		return nil
	})
}

func (s *Storage) GetCommandsHistory(guildID string) ([]st.CommandHistory, error) {
	record, err := s.view(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistory, nil
}
