package follow

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

var (
	ErrNoUser     = errors.New("no user given")
	ErrFollowSelf = errors.New("cannot follow itself")
)

// Service owns the follow behaviour for every guild the bot is in.
// Settings changes and voice moves are each serialised per guild; different
// guilds run independently.
type Service struct {
	host  Host
	store SettingsStore

	mu     sync.Mutex
	guilds map[string]*guildLocks
}

// guildLocks orders voice before state. state is never held across a host call.
type guildLocks struct {
	voice sync.Mutex
	state sync.Mutex
}

// New creates a Service.
func New(host Host, store SettingsStore) *Service {
	return &Service{
		host:   host,
		store:  store,
		guilds: make(map[string]*guildLocks),
	}
}

func (s *Service) locks(guildID string) *guildLocks {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.guilds[guildID]
	if !ok {
		l = &guildLocks{}
		s.guilds[guildID] = l
	}
	return l
}

// lock guards the guild's settings.
func (s *Service) lock(guildID string) func() {
	m := &s.locks(guildID).state
	m.Lock()
	return m.Unlock
}

// lockVoice serialises joins and leaves for the guild.
func (s *Service) lockVoice(guildID string) func() {
	m := &s.locks(guildID).voice
	m.Lock()
	return m.Unlock
}

// Settings returns the guild's follow settings.
func (s *Service) Settings(guildID string) (Settings, error) {
	unlock := s.lock(guildID)
	defer unlock()
	return s.store.FollowSettings(guildID)
}

// UpdateSettings applies fn to the guild's settings and persists the result.
func (s *Service) UpdateSettings(guildID string, fn func(*Settings)) (Settings, error) {
	unlock := s.lock(guildID)
	defer unlock()

	set, err := s.store.FollowSettings(guildID)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load follow settings: %w", err)
	}
	fn(&set)
	if err := s.store.SetFollowSettings(guildID, set); err != nil {
		return Settings{}, fmt.Errorf("failed to save follow settings: %w", err)
	}
	return set, nil
}

// Status is a snapshot of a guild's follow state for display.
type Status struct {
	Settings
	// UserChannelID is where the followed user is now, "" when not in voice.
	UserChannelID string
	// BotChannelID is where the bot is now.
	BotChannelID string
}

// Status reports who is followed and where both sides currently are.
func (s *Service) Status(guildID string) (Status, error) {
	unlock := s.lock(guildID)
	defer unlock()

	set, err := s.store.FollowSettings(guildID)
	if err != nil {
		return Status{}, fmt.Errorf("failed to load follow settings: %w", err)
	}
	st := Status{
		Settings:     set,
		BotChannelID: s.host.VoiceChannelOf(guildID, s.host.CurrentUserID()),
	}
	if set.Following() {
		st.UserChannelID = s.host.VoiceChannelOf(guildID, set.FollowUserID)
	}
	return st, nil
}

// Toggle follows userID, or stops following if userID is already followed.
// noticeChannelID is remembered as the notice channel when none is set yet.
// It returns whether the user is followed afterwards and, when execute on
// follow ran, the trigger outcome. That outcome is left to the caller to report.
func (s *Service) Toggle(guildID, userID, noticeChannelID string) (bool, Outcome, error) {
	if userID == "" {
		return false, OutcomeIdle, ErrNoUser
	}
	if userID == s.host.CurrentUserID() {
		return false, OutcomeIdle, ErrFollowSelf
	}

	following, execute, err := s.toggle(guildID, userID, noticeChannelID)
	if err != nil || !execute {
		return following, OutcomeIdle, err
	}

	unlock := s.lockVoice(guildID)
	defer unlock()

	set, ok := s.load(guildID)
	if !ok || set.FollowUserID != userID {
		return following, OutcomeIdle, nil
	}
	return following, s.trigger(guildID, set, s.host.VoiceChannelOf(guildID, userID), false), nil
}

func (s *Service) toggle(guildID, userID, noticeChannelID string) (following, execute bool, err error) {
	unlock := s.lock(guildID)
	defer unlock()

	set, err := s.store.FollowSettings(guildID)
	if err != nil {
		return false, false, fmt.Errorf("failed to load follow settings: %w", err)
	}

	if set.FollowUserID == userID {
		set.FollowUserID = ""
		if err := s.store.SetFollowSettings(guildID, set); err != nil {
			return true, false, fmt.Errorf("failed to save follow settings: %w", err)
		}
		log.Printf("[INFO] [%s] Stopped following %s", guildID, userID)
		return false, false, nil
	}

	set.FollowUserID = userID
	if set.NoticeChannelID == "" {
		set.NoticeChannelID = noticeChannelID
	}
	if err := s.store.SetFollowSettings(guildID, set); err != nil {
		return false, false, fmt.Errorf("failed to save follow settings: %w", err)
	}
	log.Printf("[INFO] [%s] Following %s", guildID, userID)
	return true, set.ExecuteOnFollow, nil
}

// Unfollow clears the followed user. It reports whether anyone was followed.
func (s *Service) Unfollow(guildID string) (bool, error) {
	unlock := s.lock(guildID)
	defer unlock()

	set, err := s.store.FollowSettings(guildID)
	if err != nil {
		return false, fmt.Errorf("failed to load follow settings: %w", err)
	}
	if !set.Following() {
		return false, nil
	}

	prev := set.FollowUserID
	set.FollowUserID = ""
	if err := s.store.SetFollowSettings(guildID, set); err != nil {
		return false, fmt.Errorf("failed to save follow settings: %w", err)
	}
	log.Printf("[INFO] [%s] Stopped following %s", guildID, prev)
	return true, nil
}

// Resume triggers once for a guild that already has a follow, unless it is manual only.
func (s *Service) Resume(guildID string) Outcome {
	unlock := s.lockVoice(guildID)
	defer unlock()

	set, ok := s.load(guildID)
	if !ok || !set.Following() || set.ManualOnly {
		return OutcomeIdle
	}
	return s.trigger(guildID, set, s.host.VoiceChannelOf(guildID, set.FollowUserID), true)
}

// load reads settings for trigger paths, where a storage failure means "not following".
func (s *Service) load(guildID string) (Settings, bool) {
	unlock := s.lock(guildID)
	defer unlock()

	set, err := s.store.FollowSettings(guildID)
	if err != nil {
		log.Printf("[ERR] [%s] Failed to load follow settings: %v", guildID, err)
		return Settings{}, false
	}
	return set, true
}
