package discord

import (
	"errors"
	"log"

	"github.com/keshon/voice-follow/internal/config"
	"github.com/keshon/voice-follow/internal/follow"
	"github.com/keshon/voice-follow/pkg/jobmgr"

	"github.com/bwmarrin/discordgo"
)

var ErrNotConnected = errors.New("no voice connection in guild")

// sessionHost answers follow.Host queries from the session state cache and
// issues voice commands through the gateway.
type sessionHost struct {
	s    *discordgo.Session
	cfg  *config.Config
	jobs *jobmgr.Manager
}

func newSessionHost(s *discordgo.Session, cfg *config.Config, jobs *jobmgr.Manager) *sessionHost {
	return &sessionHost{s: s, cfg: cfg, jobs: jobs}
}

func (h *sessionHost) CurrentUserID() string {
	if h.s.State == nil || h.s.State.User == nil {
		return ""
	}
	return h.s.State.User.ID
}

func (h *sessionHost) VoiceChannelOf(guildID, userID string) string {
	vs, err := h.s.State.VoiceState(guildID, userID)
	if err != nil || vs == nil {
		return ""
	}
	return vs.ChannelID
}

func (h *sessionHost) Channel(id string) (*follow.Channel, bool) {
	ch, err := h.s.State.Channel(id)
	if err != nil {
		ch, err = h.s.Channel(id)
		if err != nil {
			log.Printf("[WARN] Failed to resolve channel %s: %v", id, err)
			return nil, false
		}
	}
	kind, ok := channelKind(ch.Type)
	if !ok {
		return nil, false
	}
	return &follow.Channel{
		ID:        ch.ID,
		GuildID:   ch.GuildID,
		Kind:      kind,
		UserLimit: ch.UserLimit,
	}, true
}

func channelKind(t discordgo.ChannelType) (follow.ChannelKind, bool) {
	switch t {
	case discordgo.ChannelTypeGuildVoice:
		return follow.KindGuildVoice, true
	case discordgo.ChannelTypeGuildStageVoice:
		return follow.KindStageVoice, true
	case discordgo.ChannelTypeDM, discordgo.ChannelTypeGroupDM:
		return follow.KindDirectCall, true
	}
	return 0, false
}

func (h *sessionHost) Occupants(guildID, channelID string) []string {
	g, err := h.s.State.Guild(guildID)
	if err != nil {
		log.Printf("[WARN] [%s] Guild not in state: %v", guildID, err)
		return nil
	}

	h.s.State.RLock()
	defer h.s.State.RUnlock()

	var out []string
	for _, vs := range g.VoiceStates {
		if vs.ChannelID == channelID {
			out = append(out, vs.UserID)
		}
	}
	return out
}

func (h *sessionHost) Can(guildID, channelID string, perm follow.Permission) bool {
	perms, err := h.s.State.UserChannelPermissions(h.CurrentUserID(), channelID)
	if err != nil {
		log.Printf("[WARN] [%s] Failed to compute permissions in %s: %v", guildID, channelID, err)
		return false
	}
	return hasPermission(perms, perm)
}

func hasPermission(perms int64, perm follow.Permission) bool {
	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	switch perm {
	case follow.PermConnect:
		return perms&discordgo.PermissionVoiceConnect != 0
	case follow.PermMoveMembers:
		return perms&discordgo.PermissionVoiceMoveMembers != 0
	}
	return false
}

func (h *sessionHost) Join(guildID, channelID string) error {
	_, err := h.s.ChannelVoiceJoin(guildID, channelID, h.cfg.VoiceSelfMute, h.cfg.VoiceSelfDeaf)
	return err
}

func (h *sessionHost) Leave(guildID string) error {
	h.s.RLock()
	vc, ok := h.s.VoiceConnections[guildID]
	h.s.RUnlock()
	if !ok {
		return ErrNotConnected
	}
	return vc.Disconnect()
}
