package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xanadu-labs/coinbot/pkg/commands"
)

func TestToApplicationCommands(t *testing.T) {
	defs := []commands.Definition{
		{Name: "ping", Description: "Replies with Xanadu!"},
		{
			Name:        "coin",
			Description: "Replies with selected token price.",
			Options: []commands.Option{
				{Name: "input", Description: "Coin name input", Required: true},
			},
		},
	}

	appCommands := ToApplicationCommands(defs)
	require.Len(t, appCommands, 2)

	assert.Equal(t, "ping", appCommands[0].Name)
	assert.Empty(t, appCommands[0].Options)

	require.Len(t, appCommands[1].Options, 1)
	opt := appCommands[1].Options[0]
	assert.Equal(t, discordgo.ApplicationCommandOptionString, opt.Type)
	assert.Equal(t, "input", opt.Name)
	assert.True(t, opt.Required)
}

func TestInteractionUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "guild-user"}},
	}}
	assert.Equal(t, "guild-user", interactionUserID(guild))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "dm-user"},
	}}
	assert.Equal(t, "dm-user", interactionUserID(dm))

	empty := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}
	assert.Equal(t, "", interactionUserID(empty))
}

func TestExtractStringOptions(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "input", Type: discordgo.ApplicationCommandOptionString, Value: "bitcoin"},
		{Name: "count", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
	}

	values := extractStringOptions(opts)
	assert.Equal(t, map[string]string{"input": "bitcoin"}, values)

	assert.Nil(t, extractStringOptions(nil))
}
