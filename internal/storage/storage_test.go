package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/keshon/datastore"
	"github.com/keshon/voice-follow/internal/follow"
)

func openTestStorage(t *testing.T, path string, defaults follow.Settings) *Storage {
	t.Helper()
	s, err := New(path, defaults)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestFollowSettingsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := openTestStorage(t, path, follow.Settings{FollowUserID: "ignored", ChannelFull: true, ExecuteOnFollow: true})
	defer s.Close()

	got, err := s.FollowSettings("g1")
	if err != nil {
		t.Fatalf("FollowSettings() error: %v", err)
	}
	want := follow.Settings{ChannelFull: true, ExecuteOnFollow: true}
	if got != want {
		t.Errorf("FollowSettings() = %+v, want %+v", got, want)
	}
}

func TestFollowSettingsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	want := follow.Settings{FollowUserID: "u1", FollowLeave: true, NoticeChannelID: "text"}

	s := openTestStorage(t, path, follow.Settings{ChannelFull: true})
	if err := s.SetFollowSettings("g1", want); err != nil {
		t.Fatalf("SetFollowSettings() error: %v", err)
	}
	if got, _ := s.FollowSettings("g1"); got != want {
		t.Errorf("before reopen: %+v, want %+v", got, want)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	s = openTestStorage(t, path, follow.Settings{ChannelFull: true})
	defer s.Close()
	got, err := s.FollowSettings("g1")
	if err != nil {
		t.Fatalf("FollowSettings() error: %v", err)
	}
	if got != want {
		t.Errorf("after reopen: %+v, want %+v", got, want)
	}
	if other, _ := s.FollowSettings("g2"); other.Following() || !other.ChannelFull {
		t.Errorf("other guild = %+v, want defaults", other)
	}
}

func TestGroups(t *testing.T) {
	s := openTestStorage(t, filepath.Join(t.TempDir(), "store.json"), follow.Settings{})
	defer s.Close()

	if err := s.DisableGroup("g1", "follow"); err != nil {
		t.Fatal(err)
	}
	if err := s.DisableGroup("g1", "follow"); err != nil {
		t.Fatal(err)
	}
	groups, _ := s.GetDisabledGroups("g1")
	if len(groups) != 1 || groups[0] != "follow" {
		t.Errorf("disabled = %v, want [follow]", groups)
	}
	if disabled, _ := s.IsGroupDisabled("g1", "follow"); !disabled {
		t.Error("follow should be disabled")
	}

	if err := s.EnableGroup("g1", "follow"); err != nil {
		t.Fatal(err)
	}
	if disabled, _ := s.IsGroupDisabled("g1", "follow"); disabled {
		t.Error("follow should be enabled")
	}
}

func TestCommandHistoryIsBounded(t *testing.T) {
	s := openTestStorage(t, filepath.Join(t.TempDir(), "store.json"), follow.Settings{})
	defer s.Close()

	for i := 0; i < commandHistoryLimit+5; i++ {
		if err := s.SetCommand("g1", "c", "chan", "guild", "u", "user", fmt.Sprintf("cmd%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	history, err := s.GetCommandsHistory("g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != commandHistoryLimit {
		t.Fatalf("len(history) = %d, want %d", len(history), commandHistoryLimit)
	}
	if last := history[len(history)-1].Command; last != fmt.Sprintf("cmd%d", commandHistoryLimit+4) {
		t.Errorf("newest entry = %q", last)
	}
}

func TestCloseIsIdempotentAndRejectsWrites(t *testing.T) {
	s := openTestStorage(t, filepath.Join(t.TempDir(), "store.json"), follow.Settings{})

	done := make(chan error, 1)
	go func() { done <- s.Close() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Close() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Close() did not return")
	}

	if err := s.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	err := s.SetFollowSettings("g1", follow.Settings{FollowUserID: "u1"})
	if !errors.Is(err, datastore.ErrClosed) {
		t.Errorf("SetFollowSettings() after Close error = %v, want ErrClosed", err)
	}
}

func TestAutosaveWritesWithoutClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := New(path, follow.Settings{}, datastore.WithSaveInterval(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if err := s.SetFollowSettings("g1", follow.Settings{FollowUserID: "u1"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		raw, _ := os.ReadFile(path)
		if strings.Contains(string(raw), `"u1"`) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("follow settings never reached the file")
}
