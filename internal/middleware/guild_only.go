package middleware

import (
	"context"

	"github.com/keshon/voice-follow/pkg/cmd"
)

// WithGuildOnly drops interactions that did not come from a guild.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			if in, ok := fromData(inv.Data); ok && in.event.GuildID == "" {
				in.reply("This command only works inside a server.")
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}
