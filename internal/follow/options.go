package follow

import (
	"fmt"
	"strings"
)

// Option names as used by the slash command and the CLI.
const (
	OptManualOnly      = "manual-only"
	OptAutoMoveBack    = "auto-move-back"
	OptChannelFull     = "channel-full"
	OptFollowLeave     = "follow-leave"
	OptExecuteOnFollow = "execute-on-follow"
)

// OptionNames lists every boolean option in display order.
var OptionNames = []string{
	OptManualOnly,
	OptAutoMoveBack,
	OptChannelFull,
	OptFollowLeave,
	OptExecuteOnFollow,
}

var optionHelp = map[string]string{
	OptManualOnly:      "Only move when triggered by hand",
	OptAutoMoveBack:    "Return to the followed user when moved away",
	OptChannelFull:     "Take the last free seat in the followed user's channel",
	OptFollowLeave:     "Disconnect when the followed user leaves voice",
	OptExecuteOnFollow: "Join the user right after following them",
}

// OptionHelp returns a one-line description of an option.
func OptionHelp(name string) string {
	return optionHelp[name]
}

func (s *Settings) option(name string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case OptManualOnly:
		return &s.ManualOnly, nil
	case OptAutoMoveBack:
		return &s.AutoMoveBack, nil
	case OptChannelFull:
		return &s.ChannelFull, nil
	case OptFollowLeave:
		return &s.FollowLeave, nil
	case OptExecuteOnFollow:
		return &s.ExecuteOnFollow, nil
	}
	return nil, fmt.Errorf("unknown option %q", name)
}

// SetOption sets a boolean option by name.
func (s *Settings) SetOption(name string, v bool) error {
	p, err := s.option(name)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Option reads a boolean option by name.
func (s Settings) Option(name string) (bool, error) {
	p, err := s.option(name)
	if err != nil {
		return false, err
	}
	return *p, nil
}
