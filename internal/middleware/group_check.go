package middleware

import (
	"context"
	"log"

	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/storage"
	"github.com/keshon/voice-follow/pkg/cmd"
)

// CoreGroup cannot be disabled.
const CoreGroup = "core"

// WithGroupAccessCheck stops commands whose group the guild has disabled.
func WithGroupAccessCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			in, ok := fromData(inv.Data)
			if !ok {
				return c.Run(ctx, inv)
			}
			if disabledGroup(c, in.event.GuildID, in.storage) {
				in.reply("This command is disabled on this server.\nUse `/commands status` to check which commands are disabled.")
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}

func disabledGroup(c cmd.Command, guildID string, stor *storage.Storage) bool {
	meta, ok := command.Meta(c)
	if !ok || meta.Group() == "" || meta.Group() == CoreGroup || stor == nil {
		return false
	}
	disabled, err := stor.IsGroupDisabled(guildID, meta.Group())
	if err != nil {
		log.Printf("[WARN] Failed to check group %q: %v", meta.Group(), err)
		return false
	}
	return disabled
}
