package follow

import (
	"errors"
	"sort"
)

const (
	testGuild = "g1"
	botID     = "bot"
)

type fakeHost struct {
	me       string
	voice    map[string]string
	channels map[string]*Channel
	perms    map[string]map[Permission]bool

	joinErr  error
	leaveErr error
	onJoin   func()

	joins   []string
	leaves  int
	notices []Notice
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		me:       botID,
		voice:    map[string]string{},
		channels: map[string]*Channel{},
		perms:    map[string]map[Permission]bool{},
	}
}

// addChannel registers a guild voice channel the bot may connect to.
func (h *fakeHost) addChannel(id string, limit int) {
	h.channels[id] = &Channel{ID: id, GuildID: testGuild, Kind: KindGuildVoice, UserLimit: limit}
	h.perms[id] = map[Permission]bool{PermConnect: true}
}

func (h *fakeHost) CurrentUserID() string { return h.me }

func (h *fakeHost) VoiceChannelOf(_, userID string) string { return h.voice[userID] }

func (h *fakeHost) Channel(id string) (*Channel, bool) {
	ch, ok := h.channels[id]
	return ch, ok
}

func (h *fakeHost) Occupants(_, channelID string) []string {
	var out []string
	for u, c := range h.voice {
		if c == channelID {
			out = append(out, u)
		}
	}
	sort.Strings(out)
	return out
}

func (h *fakeHost) Can(_, channelID string, perm Permission) bool {
	return h.perms[channelID][perm]
}

func (h *fakeHost) Join(_, channelID string) error {
	if h.onJoin != nil {
		h.onJoin()
	}
	if h.joinErr != nil {
		return h.joinErr
	}
	h.joins = append(h.joins, channelID)
	h.voice[h.me] = channelID
	return nil
}

func (h *fakeHost) Leave(string) error {
	if h.leaveErr != nil {
		return h.leaveErr
	}
	h.leaves++
	delete(h.voice, h.me)
	return nil
}

func (h *fakeHost) Notify(n Notice) { h.notices = append(h.notices, n) }

type memStore struct {
	data    map[string]Settings
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string]Settings{}}
}

func (m *memStore) FollowSettings(guildID string) (Settings, error) {
	if m.loadErr != nil {
		return Settings{}, m.loadErr
	}
	return m.data[guildID], nil
}

func (m *memStore) SetFollowSettings(guildID string, s Settings) error {
	m.data[guildID] = s
	return nil
}

var errBoom = errors.New("boom")

func newTestService(set Settings) (*Service, *fakeHost, *memStore) {
	host := newFakeHost()
	store := newMemStore()
	store.data[testGuild] = set
	return New(host, store), host, store
}
