package middleware

import (
	"context"
	"log"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/pkg/cmd"
)

// WithCommandLogger records every interaction to the guild's command history.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			in, ok := fromData(inv.Data)
			if !ok || in.storage == nil || in.event.GuildID == "" {
				return err
			}
			user := command.InteractionUser(in.event)
			if e := bot.LogCommand(in.session, in.storage, in.event.GuildID, in.event.ChannelID, user.ID, user.Username, c.Name()); e != nil {
				log.Printf("[WARN] Failed to log command /%s: %v", c.Name(), e)
			}
			if err != nil {
				log.Printf("[ERR] Command /%s failed: %v", c.Name(), err)
			}
			return err
		})
	}
}
