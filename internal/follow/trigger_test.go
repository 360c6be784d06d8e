package follow

import "testing"

func TestTriggerOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		set     Settings
		setup   func(h *fakeHost)
		target  string
		want    Outcome
		joins   []string
		leaves  int
		notices int
	}{
		{
			name:   "not following is a no-op",
			set:    Settings{},
			setup:  func(h *fakeHost) { h.addChannel("A", 0) },
			target: "A",
			want:   OutcomeIdle,
		},
		{
			name:    "joins a different channel",
			set:     Settings{FollowUserID: "u1"},
			setup:   func(h *fakeHost) { h.addChannel("A", 0) },
			target:  "A",
			want:    OutcomeJoined,
			joins:   []string{"A"},
			notices: 1,
		},
		{
			name: "same channel is reported, never joined",
			set:  Settings{FollowUserID: "u1"},
			setup: func(h *fakeHost) {
				h.addChannel("A", 0)
				h.voice[botID] = "A"
			},
			target:  "A",
			want:    OutcomeAlreadyThere,
			notices: 1,
		},
		{
			name: "missing connect permission",
			set:  Settings{FollowUserID: "u1"},
			setup: func(h *fakeHost) {
				h.addChannel("A", 0)
				h.perms["A"][PermConnect] = false
			},
			target:  "A",
			want:    OutcomeNoPermission,
			notices: 1,
		},
		{
			name: "direct call needs no connect permission",
			set:  Settings{FollowUserID: "u1"},
			setup: func(h *fakeHost) {
				h.channels["DM"] = &Channel{ID: "DM", Kind: KindDirectCall}
			},
			target:  "DM",
			want:    OutcomeJoined,
			joins:   []string{"DM"},
			notices: 1,
		},
		{
			name: "full channel without move members",
			set:  Settings{FollowUserID: "u1"},
			setup: func(h *fakeHost) {
				h.addChannel("A", 2)
				h.voice["u1"] = "A"
				h.voice["u2"] = "A"
			},
			target:  "A",
			want:    OutcomeChannelFull,
			notices: 1,
		},
		{
			name: "full channel with move members",
			set:  Settings{FollowUserID: "u1"},
			setup: func(h *fakeHost) {
				h.addChannel("A", 2)
				h.perms["A"][PermMoveMembers] = true
				h.voice["u1"] = "A"
				h.voice["u2"] = "A"
			},
			target:  "A",
			want:    OutcomeJoined,
			joins:   []string{"A"},
			notices: 1,
		},
		{
			name: "one free seat is joinable",
			set:  Settings{FollowUserID: "u1"},
			setup: func(h *fakeHost) {
				h.addChannel("A", 2)
				h.voice["u1"] = "A"
			},
			target:  "A",
			want:    OutcomeJoined,
			joins:   []string{"A"},
			notices: 1,
		},
		{
			name:   "unknown channel degrades silently",
			set:    Settings{FollowUserID: "u1"},
			setup:  func(h *fakeHost) {},
			target: "ghost",
			want:   OutcomeUnresolved,
		},
		{
			name: "join failure is reported",
			set:  Settings{FollowUserID: "u1"},
			setup: func(h *fakeHost) {
				h.addChannel("A", 0)
				h.joinErr = errBoom
			},
			target:  "A",
			want:    OutcomeJoinFailed,
			notices: 1,
		},
		{
			name:    "no target, in channel, follow leave off stays connected",
			set:     Settings{FollowUserID: "u1"},
			setup:   func(h *fakeHost) { h.voice[botID] = "A" },
			want:    OutcomeStayed,
			notices: 1,
		},
		{
			name:    "no target, in channel, follow leave on disconnects",
			set:     Settings{FollowUserID: "u1", FollowLeave: true},
			setup:   func(h *fakeHost) { h.voice[botID] = "A" },
			want:    OutcomeDisconnected,
			leaves:  1,
			notices: 1,
		},
		{
			name: "leave failure is reported",
			set:  Settings{FollowUserID: "u1", FollowLeave: true},
			setup: func(h *fakeHost) {
				h.voice[botID] = "A"
				h.leaveErr = errBoom
			},
			want:    OutcomeLeaveFailed,
			notices: 1,
		},
		{
			name:    "no target and not in voice",
			set:     Settings{FollowUserID: "u1", FollowLeave: true},
			setup:   func(h *fakeHost) {},
			want:    OutcomeNotInVoice,
			notices: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, host, _ := newTestService(tt.set)
			tt.setup(host)

			got := svc.TriggerInto(testGuild, tt.target)
			if got != tt.want {
				t.Errorf("TriggerInto(%q) = %v, want %v", tt.target, got, tt.want)
			}
			if len(host.joins) != len(tt.joins) {
				t.Fatalf("joins = %v, want %v", host.joins, tt.joins)
			}
			for i := range tt.joins {
				if host.joins[i] != tt.joins[i] {
					t.Errorf("joins = %v, want %v", host.joins, tt.joins)
				}
			}
			if host.leaves != tt.leaves {
				t.Errorf("leaves = %d, want %d", host.leaves, tt.leaves)
			}
			if len(host.notices) != tt.notices {
				t.Errorf("notices = %v, want %d", host.notices, tt.notices)
			}
		})
	}
}

func TestTriggerLooksUpFollowedUser(t *testing.T) {
	svc, host, _ := newTestService(Settings{FollowUserID: "u1", NoticeChannelID: "text"})
	host.addChannel("B", 0)
	host.voice["u1"] = "B"
	host.voice[botID] = "A"

	if got, err := svc.Trigger(testGuild); err != nil || got != OutcomeJoined {
		t.Fatalf("Trigger() = %v, %v, want joined", got, err)
	}
	if len(host.joins) != 1 || host.joins[0] != "B" {
		t.Errorf("joins = %v, want [B]", host.joins)
	}
	if len(host.notices) != 0 {
		t.Errorf("manual trigger posted notices: %v", host.notices)
	}
}

func TestTriggerIntoPostsNotice(t *testing.T) {
	svc, host, _ := newTestService(Settings{FollowUserID: "u1", NoticeChannelID: "text"})
	host.addChannel("B", 0)

	svc.TriggerInto(testGuild, "B")
	if len(host.notices) != 1 {
		t.Fatalf("notices = %v, want 1", host.notices)
	}
	n := host.notices[0]
	if n.GuildID != testGuild || n.ChannelID != "text" || !n.Outcome.Success() {
		t.Errorf("notice = %+v", n)
	}
}

func TestOutcomeClassification(t *testing.T) {
	for o := OutcomeIdle; o <= OutcomeLeaveFailed; o++ {
		if o.Silent() != (o.Message() == "") {
			t.Errorf("%v: Silent() = %v but Message() = %q", o, o.Silent(), o.Message())
		}
		if o.Success() && o.Silent() {
			t.Errorf("%v is both success and silent", o)
		}
	}
}
