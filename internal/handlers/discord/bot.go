package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/fairdice/internal/services/roll"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// interactionTimeout bounds the work done for one interaction. Discord
// expects a response within three seconds.
const interactionTimeout = 3 * time.Second

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	components  map[string]ComponentHandler
	commandIDs  map[string]string // Maps command name to command ID
	rollService roll.Service
	logger      *zap.Logger
	config      *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	RollService roll.Service
	Logger      *zap.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Token == "" {
		return nil, ErrEmptyToken
	}

	if cfg.RollService == nil {
		return nil, ErrNilRollService
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:     session,
		commands:    make(map[string]CommandHandler),
		components:  make(map[string]ComponentHandler),
		commandIDs:  make(map[string]string),
		rollService: cfg.RollService,
		logger:      logger.Named("discord"),
		config:      cfg,
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the gateway connection and registers the slash commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	diceCmd := NewDiceCommand(b.rollService, b.logger)
	if err := b.RegisterCommand(diceCmd); err != nil {
		return fmt.Errorf("failed to register dice command: %w", err)
	}
	b.RegisterComponents(diceCmd)

	b.logger.Info("bot is running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command",
				zap.String("command", cmdName),
				zap.String("command_id", cmdID),
				zap.Error(err),
			)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord, for GuildID only when set
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		zap.String("command", cmd.GetName()),
		zap.String("command_id", createdCmd.ID),
		zap.String("guild_id", b.config.GuildID),
	)

	return nil
}

// RegisterComponents routes the handler's buttons to it
func (b *Bot) RegisterComponents(h ComponentHandler) {
	for _, id := range h.CustomIDs() {
		b.components[id] = h
	}
}

// appID falls back to the session user when no application ID is configured
func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// handleInteraction dispatches slash commands and button presses
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		h, ok := b.commands[name]
		if !ok {
			return
		}
		if err := h.Handle(ctx, s, i); err != nil {
			b.logger.Error("failed to handle command", zap.String("command", name), zap.Error(err))
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		h, ok := b.components[customID]
		if !ok {
			if err := RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID)); err != nil {
				b.logger.Error("failed to respond", zap.Error(err))
			}
			return
		}
		if err := h.HandleComponent(ctx, s, i); err != nil {
			b.logger.Error("failed to handle component", zap.String("custom_id", customID), zap.Error(err))
		}
	}
}
