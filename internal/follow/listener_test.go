package follow

import "testing"

func TestListenerIgnoresUnchangedEntries(t *testing.T) {
	svc, host, _ := newTestService(Settings{
		FollowUserID: "u1", AutoMoveBack: true, ChannelFull: true, FollowLeave: true,
	})
	host.addChannel("A", 2)
	host.voice["u1"] = "A"

	svc.HandleVoiceStates(testGuild, []VoiceStateChange{
		{UserID: "u1", ChannelID: "A", OldChannelID: "A"},
		{UserID: botID, ChannelID: "A", OldChannelID: "A"},
		{UserID: "u2", ChannelID: "", OldChannelID: ""},
	})

	if len(host.joins) != 0 || host.leaves != 0 || len(host.notices) != 0 {
		t.Errorf("acted on unchanged batch: joins=%v leaves=%d notices=%v", host.joins, host.leaves, host.notices)
	}
}

func TestListenerFollowsMove(t *testing.T) {
	svc, host, _ := newTestService(Settings{FollowUserID: "u1"})
	host.addChannel("A", 0)
	host.addChannel("B", 0)
	host.voice[botID] = "A"
	host.voice["u1"] = "B"

	svc.HandleVoiceStates(testGuild, []VoiceStateChange{{UserID: "u1", ChannelID: "B", OldChannelID: "A"}})

	if len(host.joins) != 1 || host.joins[0] != "B" {
		t.Errorf("joins = %v, want exactly [B]", host.joins)
	}
}

func TestListenerFollowsLeave(t *testing.T) {
	svc, host, _ := newTestService(Settings{FollowUserID: "u1", FollowLeave: true})
	host.addChannel("A", 0)
	host.voice[botID] = "A"

	svc.HandleVoiceStates(testGuild, []VoiceStateChange{{UserID: "u1", ChannelID: "", OldChannelID: "A"}})

	if host.leaves != 1 {
		t.Errorf("leaves = %d, want 1", host.leaves)
	}
	if len(host.joins) != 0 {
		t.Errorf("joins = %v, want none", host.joins)
	}
}

func TestListenerSkipsWhenManualOrIdle(t *testing.T) {
	for _, set := range []Settings{
		{FollowUserID: "u1", ManualOnly: true},
		{},
	} {
		svc, host, _ := newTestService(set)
		host.addChannel("B", 0)
		host.voice["u1"] = "B"

		svc.HandleVoiceStates(testGuild, []VoiceStateChange{{UserID: "u1", ChannelID: "B"}})
		if len(host.joins) != 0 || len(host.notices) != 0 {
			t.Errorf("settings %+v: joins=%v notices=%v", set, host.joins, host.notices)
		}
	}
}

func TestListenerIgnoresOtherUsers(t *testing.T) {
	svc, host, _ := newTestService(Settings{FollowUserID: "u1"})
	host.addChannel("B", 0)
	host.voice["u2"] = "B"

	svc.HandleVoiceStates(testGuild, []VoiceStateChange{{UserID: "u2", ChannelID: "B", OldChannelID: "A"}})
	if len(host.joins) != 0 || len(host.notices) != 0 {
		t.Errorf("joins=%v notices=%v", host.joins, host.notices)
	}
}

func TestListenerAutoMoveBack(t *testing.T) {
	svc, host, _ := newTestService(Settings{FollowUserID: "u1", AutoMoveBack: true})
	host.addChannel("A", 0)
	host.addChannel("C", 0)
	host.voice["u1"] = "A"
	// someone dragged the bot from A to C
	host.voice[botID] = "C"

	svc.HandleVoiceStates(testGuild, []VoiceStateChange{{UserID: botID, ChannelID: "C", OldChannelID: "A"}})

	if len(host.joins) != 1 || host.joins[0] != "A" {
		t.Errorf("joins = %v, want [A]", host.joins)
	}
}

func TestListenerAutoMoveBackDisabled(t *testing.T) {
	svc, host, _ := newTestService(Settings{FollowUserID: "u1"})
	host.addChannel("A", 0)
	host.voice["u1"] = "A"
	host.voice[botID] = "C"

	svc.HandleVoiceStates(testGuild, []VoiceStateChange{{UserID: botID, ChannelID: "C", OldChannelID: "A"}})
	if len(host.joins) != 0 {
		t.Errorf("joins = %v, want none", host.joins)
	}
}

func TestListenerChannelFullPreemption(t *testing.T) {
	tests := []struct {
		name  string
		set   Settings
		setup func(h *fakeHost)
		joins int
	}{
		{
			name:  "last seat with followed user inside",
			set:   Settings{FollowUserID: "u1", ChannelFull: true},
			setup: func(h *fakeHost) {},
			joins: 1,
		},
		{
			name:  "option disabled",
			set:   Settings{FollowUserID: "u1"},
			setup: func(h *fakeHost) {},
		},
		{
			name: "bot can move members",
			set:  Settings{FollowUserID: "u1", ChannelFull: true},
			setup: func(h *fakeHost) {
				h.perms["A"][PermMoveMembers] = true
			},
		},
		{
			name: "more than one seat left",
			set:  Settings{FollowUserID: "u1", ChannelFull: true},
			setup: func(h *fakeHost) {
				h.channels["A"].UserLimit = 4
			},
		},
		{
			name: "followed user not inside",
			set:  Settings{FollowUserID: "u1", ChannelFull: true},
			setup: func(h *fakeHost) {
				h.voice["u1"] = "B"
				h.voice["u4"] = "A"
			},
		},
		{
			name: "unlimited channel",
			set:  Settings{FollowUserID: "u1", ChannelFull: true},
			setup: func(h *fakeHost) {
				h.channels["A"].UserLimit = 0
			},
		},
		{
			name: "channel cannot be resolved",
			set:  Settings{FollowUserID: "u1", ChannelFull: true},
			setup: func(h *fakeHost) {
				delete(h.channels, "A")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, host, _ := newTestService(tt.set)
			// limit 3: u1 and u2 remain after u3 left, one seat free
			host.addChannel("A", 3)
			host.addChannel("B", 0)
			host.voice["u1"] = "A"
			host.voice["u2"] = "A"
			tt.setup(host)

			svc.HandleVoiceStates(testGuild, []VoiceStateChange{{UserID: "u3", ChannelID: "", OldChannelID: "A"}})

			if len(host.joins) != tt.joins {
				t.Fatalf("joins = %v, want %d", host.joins, tt.joins)
			}
			if tt.joins > 0 && host.joins[0] != "A" {
				t.Errorf("joined %q, want A", host.joins[0])
			}
		})
	}
}

func TestListenerChannelFullSkipsOwnChannel(t *testing.T) {
	svc, host, _ := newTestService(Settings{FollowUserID: "u1", ChannelFull: true})
	host.addChannel("A", 3)
	host.voice["u1"] = "A"
	host.voice[botID] = "A"

	svc.HandleVoiceStates(testGuild, []VoiceStateChange{{UserID: "u3", ChannelID: "", OldChannelID: "A"}})
	if len(host.joins) != 0 || len(host.notices) != 0 {
		t.Errorf("joins=%v notices=%v", host.joins, host.notices)
	}
}

func TestListenerProcessesBatchInOrder(t *testing.T) {
	svc, host, _ := newTestService(Settings{FollowUserID: "u1"})
	host.addChannel("A", 0)
	host.addChannel("B", 0)
	host.voice["u1"] = "B"

	svc.HandleVoiceStates(testGuild, []VoiceStateChange{
		{UserID: "u1", ChannelID: "A"},
		{UserID: "u1", ChannelID: "B", OldChannelID: "A"},
	})

	if len(host.joins) != 2 || host.joins[0] != "A" || host.joins[1] != "B" {
		t.Errorf("joins = %v, want [A B]", host.joins)
	}
}
