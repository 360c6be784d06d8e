package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestHashCommandIgnoresOptionOrderAndIDs(t *testing.T) {
	a := &discordgo.ApplicationCommand{
		Name:        "follow",
		Description: "d",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "trigger", Description: "t"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "status", Description: "s"},
		},
	}
	b := &discordgo.ApplicationCommand{
		ID:          "123",
		Version:     "9",
		Name:        "follow",
		Description: "d",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "status", Description: "s"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "trigger", Description: "t"},
		},
	}
	if hashCommand(a) != hashCommand(b) {
		t.Error("equivalent commands hash differently")
	}

	b.Options[0].Description = "changed"
	if hashCommand(a) == hashCommand(b) {
		t.Error("changed description did not change the hash")
	}
}

func TestHashCommandSeesNestedChoices(t *testing.T) {
	mk := func(v string) *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name: "commands",
			Options: []*discordgo.ApplicationCommandOption{{
				Name: "toggle",
				Options: []*discordgo.ApplicationCommandOption{{
					Name:    "group",
					Choices: []*discordgo.ApplicationCommandOptionChoice{{Name: v, Value: v}},
				}},
			}},
		}
	}
	if hashCommand(mk("core")) == hashCommand(mk("follow")) {
		t.Error("nested choice change not reflected in hash")
	}
}
