package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var PermissionNames = map[int64]string{
	discordgo.PermissionAdministrator:      "Administrator",
	discordgo.PermissionManageChannels:     "Manage Channels",
	discordgo.PermissionManageGuild:        "Manage Server",
	discordgo.PermissionViewChannel:        "View Channel",
	discordgo.PermissionSendMessages:       "Send Messages",
	discordgo.PermissionManageMessages:     "Manage Messages",
	discordgo.PermissionEmbedLinks:         "Embed Links",
	discordgo.PermissionVoiceConnect:       "Connect to Voice Channel",
	discordgo.PermissionVoiceSpeak:         "Speak",
	discordgo.PermissionVoiceMuteMembers:   "Mute Members",
	discordgo.PermissionVoiceDeafenMembers: "Deafen Members",
	discordgo.PermissionVoiceMoveMembers:   "Move Members",
	discordgo.PermissionManageRoles:        "Manage Roles",
}

// PermissionList renders permission bits as "`A`, `B`".
func PermissionList(perms []int64) string {
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		name := PermissionNames[p]
		if name == "" {
			name = fmt.Sprintf("0x%x", p)
		}
		names = append(names, name)
	}
	return "`" + strings.Join(names, "`, `") + "`"
}

// HasAny reports whether perms contains at least one of required.
// An empty required list always passes.
func HasAny(perms int64, required []int64) bool {
	if len(required) == 0 || perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	for _, p := range required {
		if perms&p != 0 {
			return true
		}
	}
	return false
}
