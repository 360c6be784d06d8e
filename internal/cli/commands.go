// Package cli is the offline inspector for the bot's datastore. Commands live in
// a pkg/cmd registry and are exposed through cobra.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/keshon/voice-follow/internal/follow"
	"github.com/keshon/voice-follow/internal/storage"
	"github.com/keshon/voice-follow/pkg/cmd"
)

// Env is the Invocation.Data of every CLI command.
type Env struct {
	Store *storage.Storage
	Out   io.Writer
}

// Usage describes positional arguments for the cobra wrapper.
type Usage interface {
	ArgsUsage() string
	NArgs() int
}

// Register adds the CLI commands to reg.
func Register(reg *cmd.Registry) {
	reg.Register(&StatusCommand{})
	reg.Register(&UnfollowCommand{})
	reg.Register(&SetCommand{})
}

func env(inv *cmd.Invocation) (*Env, error) {
	e, ok := inv.Data.(*Env)
	if !ok || e.Store == nil {
		return nil, fmt.Errorf("no datastore opened")
	}
	return e, nil
}

type StatusCommand struct{}

func (c *StatusCommand) Name() string        { return "status" }
func (c *StatusCommand) Description() string { return "Show follow settings and disabled groups of a guild" }
func (c *StatusCommand) ArgsUsage() string   { return "<guild>" }
func (c *StatusCommand) NArgs() int          { return 1 }

func (c *StatusCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	e, err := env(inv)
	if err != nil {
		return err
	}
	guildID := inv.Arg(0)

	set, err := e.Store.FollowSettings(guildID)
	if err != nil {
		return fmt.Errorf("failed to read follow settings: %w", err)
	}
	disabled, err := e.Store.GetDisabledGroups(guildID)
	if err != nil {
		return fmt.Errorf("failed to read disabled groups: %w", err)
	}

	following := "nobody"
	if set.Following() {
		following = set.FollowUserID
	}
	notice := "-"
	if set.NoticeChannelID != "" {
		notice = set.NoticeChannelID
	}
	groups := "-"
	if len(disabled) > 0 {
		groups = strings.Join(disabled, ", ")
	}

	fmt.Fprintf(e.Out, "guild:           %s\n", guildID)
	fmt.Fprintf(e.Out, "following:       %s\n", following)
	fmt.Fprintf(e.Out, "notice channel:  %s\n", notice)
	fmt.Fprintf(e.Out, "disabled groups: %s\n", groups)
	for _, name := range follow.OptionNames {
		v, _ := set.Option(name)
		fmt.Fprintf(e.Out, "%-17s%t\n", name+":", v)
	}
	return nil
}

type UnfollowCommand struct{}

func (c *UnfollowCommand) Name() string        { return "unfollow" }
func (c *UnfollowCommand) Description() string { return "Clear the followed user of a guild" }
func (c *UnfollowCommand) ArgsUsage() string   { return "<guild>" }
func (c *UnfollowCommand) NArgs() int          { return 1 }

func (c *UnfollowCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	e, err := env(inv)
	if err != nil {
		return err
	}
	guildID := inv.Arg(0)

	set, err := e.Store.FollowSettings(guildID)
	if err != nil {
		return fmt.Errorf("failed to read follow settings: %w", err)
	}
	if !set.Following() {
		fmt.Fprintln(e.Out, "not following anyone")
		return nil
	}

	prev := set.FollowUserID
	set.FollowUserID = ""
	if err := e.Store.SetFollowSettings(guildID, set); err != nil {
		return fmt.Errorf("failed to save follow settings: %w", err)
	}
	fmt.Fprintf(e.Out, "stopped following %s\n", prev)
	return nil
}

type SetCommand struct{}

func (c *SetCommand) Name() string { return "set" }
func (c *SetCommand) Description() string {
	return "Set a follow option: " + strings.Join(follow.OptionNames, ", ")
}
func (c *SetCommand) ArgsUsage() string { return "<guild> <option> <true|false>" }
func (c *SetCommand) NArgs() int        { return 3 }

func (c *SetCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	e, err := env(inv)
	if err != nil {
		return err
	}
	guildID, option := inv.Arg(0), inv.Arg(1)

	v, err := strconv.ParseBool(inv.Arg(2))
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", inv.Arg(2), err)
	}

	set, err := e.Store.FollowSettings(guildID)
	if err != nil {
		return fmt.Errorf("failed to read follow settings: %w", err)
	}
	if err := set.SetOption(option, v); err != nil {
		return err
	}
	if err := e.Store.SetFollowSettings(guildID, set); err != nil {
		return fmt.Errorf("failed to save follow settings: %w", err)
	}
	fmt.Fprintf(e.Out, "%s = %t\n", option, v)
	return nil
}
