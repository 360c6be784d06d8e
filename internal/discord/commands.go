package discord

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/keshon/voice-follow/internal/command"
	"github.com/keshon/voice-follow/pkg/cmd"
	"github.com/keshon/voice-follow/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
)

// registerCommands syncs application commands for a guild with Discord:
// deletes obsolete or disabled ones, creates commands whose definition has changed.
func (b *Bot) registerCommands(guildID string) error {
	appID, err := b.appID()
	if err != nil {
		return err
	}

	remote, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("failed to list commands: %w", err)
	}

	disabled, err := b.storage.GetDisabledGroups(guildID)
	if err != nil {
		log.Printf("[WARN] [%s] Failed to read disabled groups: %v", guildID, err)
	}
	local := buildCommandDefinitions(cmd.DefaultRegistry.GetAll(), disabled)
	hashes := b.cache.load(guildID)

	b.deleteObsoleteCommands(appID, guildID, remote, local, hashes)
	b.upsertChangedCommands(appID, guildID, local, hashes)

	b.cache.save(guildID, hashes)
	return nil
}

// buildCommandDefinitions returns the definitions of every registered Discord
// command whose group is not disabled.
func buildCommandDefinitions(all []cmd.Command, disabledGroups []string) []*discordgo.ApplicationCommand {
	off := make(map[string]bool, len(disabledGroups))
	for _, g := range disabledGroups {
		off[g] = true
	}

	var defs []*discordgo.ApplicationCommand
	for _, c := range all {
		if meta, ok := command.Meta(c); ok && off[meta.Group()] {
			continue
		}
		if def := command.Definition(c); def != nil {
			defs = append(defs, def)
		}
	}
	return defs
}

func (b *Bot) deleteObsoleteCommands(appID, guildID string, remote, local []*discordgo.ApplicationCommand, hashes map[string]string) {
	localNames := make(map[string]struct{}, len(local))
	for _, d := range local {
		localNames[d.Name] = struct{}{}
	}

	for _, rc := range remote {
		if _, exists := localNames[rc.Name]; exists {
			continue
		}
		log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, rc.Name)
		err := b.withRetry(func() error {
			return b.dg.ApplicationCommandDelete(appID, guildID, rc.ID)
		})
		if err != nil {
			log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, rc.Name, err)
			continue
		}
		delete(hashes, rc.Name)
	}

	// a command deleted by hand on Discord's side must be recreated
	remoteNames := make(map[string]struct{}, len(remote))
	for _, rc := range remote {
		remoteNames[rc.Name] = struct{}{}
	}
	for name := range hashes {
		if _, ok := remoteNames[name]; !ok {
			delete(hashes, name)
		}
	}
}

func (b *Bot) upsertChangedCommands(appID, guildID string, defs []*discordgo.ApplicationCommand, hashes map[string]string) {
	var changed []*discordgo.ApplicationCommand
	for _, d := range defs {
		if hashes[d.Name] != hashCommand(d) {
			changed = append(changed, d)
		}
	}
	if len(changed) == 0 {
		return
	}

	log.Printf("[INFO] [%s] Registering %d changed command(s)...", guildID, len(changed))
	for _, d := range changed {
		err := b.withRetry(func() error {
			_, err := b.dg.ApplicationCommandCreate(appID, guildID, d)
			return err
		})
		if err != nil {
			log.Printf("[ERR] [%s] Failed to register %s: %v", guildID, d.Name, err)
			continue
		}
		hashes[d.Name] = hashCommand(d)
		log.Printf("[DONE] [%s] Registered: %s", guildID, d.Name)
	}
}

// appID returns the bot's application ID, fetching from Discord if not cached in State.
func (b *Bot) appID() (string, error) {
	if b.dg.State.User != nil && b.dg.State.User.ID != "" {
		return b.dg.State.User.ID, nil
	}
	u, err := b.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return u.ID, nil
}

func (b *Bot) withRetry(fn func() error) error {
	return retrylimit.WithRetry(b.ctx, func() error {
		return classifyREST(fn())
	}, b.limiter, retrylimit.DefaultRetryConfig())
}

// restError exposes a discordgo REST failure to retrylimit.
type restError struct {
	*discordgo.RESTError
}

func (e restError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

func (e restError) Unwrap() error { return e.RESTError }

// classifyREST marks client errors other than 429 as fatal so they are not retried.
func classifyREST(err error) error {
	if err == nil {
		return nil
	}
	var re *discordgo.RESTError
	if !errors.As(err, &re) {
		return err
	}
	wrapped := restError{re}
	code := wrapped.StatusCode()
	if code >= 400 && code < 500 && code != http.StatusTooManyRequests {
		return &retrylimit.FatalError{Err: wrapped}
	}
	return wrapped
}
