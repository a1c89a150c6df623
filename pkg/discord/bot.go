// Package discord adapts the command dispatcher to the Discord gateway:
// it owns the session lifecycle, registers the slash commands at startup,
// and maps interaction events onto commands.Interaction.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/xanadu-labs/coinbot/pkg/commands"
	"github.com/xanadu-labs/coinbot/pkg/config"
	"github.com/xanadu-labs/coinbot/pkg/logger"
)

type Bot struct {
	session    *discordgo.Session
	cfg        config.DiscordConfig
	dispatcher *commands.Dispatcher
	ctx        context.Context
}

func NewBot(cfg config.DiscordConfig, dispatcher *commands.Dispatcher) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		session:    session,
		cfg:        cfg,
		dispatcher: dispatcher,
		ctx:        context.Background(),
	}, nil
}

// Start opens the gateway session and syncs the command table with the
// platform. Registration is guild-scoped when a guild id is configured,
// otherwise application-global.
func (b *Bot) Start(ctx context.Context) error {
	logger.InfoC("discord", "Starting Discord bot")

	b.ctx = ctx
	b.session.AddHandler(b.handleInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	defs := b.dispatcher.Definitions()
	registered, err := b.session.ApplicationCommandBulkOverwrite(
		b.cfg.AppID, b.cfg.GuildID, ToApplicationCommands(defs))
	if err != nil {
		b.session.Close()
		return fmt.Errorf("failed to register application commands: %w", err)
	}

	botUser, err := b.session.User("@me")
	if err != nil {
		b.session.Close()
		return fmt.Errorf("failed to get bot user: %w", err)
	}
	logger.InfoCF("discord", "Discord bot connected", map[string]any{
		"username": botUser.Username,
		"user_id":  botUser.ID,
		"commands": len(registered),
		"guild_id": b.cfg.GuildID,
	})

	return nil
}

func (b *Bot) Stop() error {
	logger.InfoC("discord", "Stopping Discord bot")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}

// ToApplicationCommands maps command definitions to the platform's
// registration payload. Only string options exist in the command table.
func ToApplicationCommands(defs []commands.Definition) []*discordgo.ApplicationCommand {
	appCommands := make([]*discordgo.ApplicationCommand, 0, len(defs))
	for _, def := range defs {
		cmd := &discordgo.ApplicationCommand{
			Name:        def.Name,
			Description: def.Description,
		}
		for _, opt := range def.Options {
			cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        opt.Name,
				Description: opt.Description,
				Required:    opt.Required,
			})
		}
		appCommands = append(appCommands, cmd)
	}
	return appCommands
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// The gateway also delivers component and autocomplete interactions;
	// only command invocations are dispatched.
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	ic := commands.NewInteraction(
		data.Name,
		interactionUserID(i),
		extractStringOptions(data.Options),
		&sessionResponder{session: s, interaction: i.Interaction},
	)

	logger.DebugCF("discord", "Received command interaction", map[string]any{
		"command": data.Name,
		"user_id": ic.UserID,
	})

	b.dispatcher.Dispatch(b.ctx, ic)
}

// interactionUserID resolves the invoking user for both guild interactions
// (Member set) and DMs (User set).
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func extractStringOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	if len(opts) == 0 {
		return nil
	}
	values := make(map[string]string, len(opts))
	for _, opt := range opts {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			values[opt.Name] = opt.StringValue()
		}
	}
	return values
}

type sessionResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

func (r *sessionResponder) Respond(content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}
