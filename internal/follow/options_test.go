package follow

import "testing"

func TestSetOption(t *testing.T) {
	var s Settings
	for _, name := range OptionNames {
		if err := s.SetOption(name, true); err != nil {
			t.Fatalf("SetOption(%q) error: %v", name, err)
		}
		if v, err := s.Option(name); err != nil || !v {
			t.Errorf("Option(%q) = %v, %v", name, v, err)
		}
		if OptionHelp(name) == "" {
			t.Errorf("no help for %q", name)
		}
	}
	want := Settings{ManualOnly: true, AutoMoveBack: true, ChannelFull: true, FollowLeave: true, ExecuteOnFollow: true}
	if s != want {
		t.Errorf("settings = %+v, want %+v", s, want)
	}

	if err := s.SetOption(" Follow-Leave ", false); err != nil || s.FollowLeave {
		t.Errorf("case-insensitive SetOption failed: %v %+v", err, s)
	}
	if err := s.SetOption("nope", true); err == nil {
		t.Error("SetOption(nope) should fail")
	}
}
