// /internal/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/keshon/datastore"
	"github.com/keshon/voice-follow/internal/follow"
	st "github.com/keshon/voice-follow/internal/storagetypes"
)

const commandHistoryLimit int = 20

// Storage keeps one Record per guild in a JSON datastore.
type Storage struct {
	ds             *datastore.DataStore
	cancel         context.CancelFunc
	mu             sync.Mutex
	followDefaults follow.Settings
}

// New opens (or creates) the datastore at filePath. followDefaults seeds the
// follow options of guilds without a stored follow record.
// The datastore saves in the background until Close.
func New(filePath string, followDefaults follow.Settings, opts ...datastore.Option) (*Storage, error) {
	ctx, cancel := context.WithCancel(context.Background())
	ds, err := datastore.New(ctx, filePath, opts...)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open datastore: %w", err)
	}
	followDefaults.FollowUserID = ""
	return &Storage{ds: ds, cancel: cancel, followDefaults: followDefaults}, nil
}

// Close stops the autosave loop and writes the store to disk. Safe to call more than once.
func (s *Storage) Close() error {
	// the autosave goroutine only exits on cancel, and ds.Close waits for it
	s.cancel()
	if err := s.ds.Close(); err != nil {
		return fmt.Errorf("failed to save datastore: %w", err)
	}
	return nil
}

// getOrCreateGuildRecord must be called with s.mu held.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*st.Record, error) {
	var record st.Record
	if _, err := s.ds.Get(guildID, &record); err != nil {
		return nil, fmt.Errorf("error reading record: %w", err)
	}

	if record.CommandsDisabled == nil {
		record.CommandsDisabled = []string{}
	}
	if record.CommandsHistory == nil {
		record.CommandsHistory = []st.CommandHistory{}
	}
	if len(record.CommandsHistory) > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[len(record.CommandsHistory)-commandHistoryLimit:]
	}

	return &record, nil
}

// update loads the guild record, applies fn and stores the record back.
func (s *Storage) update(guildID string, fn func(*st.Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return fmt.Errorf("failed to load guild record: %w", err)
	}
	if err := fn(record); err != nil {
		return err
	}
	if err := s.ds.Set(guildID, record); err != nil {
		return fmt.Errorf("failed to store guild record: %w", err)
	}
	return nil
}

func (s *Storage) view(guildID string) (*st.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild record: %w", err)
	}
	return record, nil
}
