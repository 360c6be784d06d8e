package middleware

import (
	"context"
	"fmt"

	"github.com/keshon/voice-follow/internal/bot"
	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/internal/config"
	"github.com/keshon/voice-follow/pkg/cmd"
)

// WithUserPermissionCheck requires the caller to hold at least one of the
// command's UserPermissions. Administrators and the developer always pass.
func WithUserPermissionCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			in, ok := fromData(inv.Data)
			if !ok || in.event.GuildID == "" || in.event.Member == nil || in.event.Member.User == nil {
				return c.Run(ctx, inv)
			}
			meta, ok := command.Meta(c)
			if !ok || len(meta.UserPermissions()) == 0 {
				return c.Run(ctx, inv)
			}
			if config.IsDeveloper(in.config, in.event.Member.User.ID) {
				return c.Run(ctx, inv)
			}

			// Interaction members carry their resolved channel permissions.
			perms := in.event.Member.Permissions
			if perms == 0 {
				p, err := in.session.UserChannelPermissions(in.event.Member.User.ID, in.event.ChannelID)
				if err != nil {
					return fmt.Errorf("failed to get user permissions: %w", err)
				}
				perms = p
			}

			if !bot.HasAny(perms, meta.UserPermissions()) {
				in.reply(fmt.Sprintf(
					"You need at least one of the following permissions to run this command:\n%s",
					bot.PermissionList(meta.UserPermissions()),
				))
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}
