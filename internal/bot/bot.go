package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/config"
	"github.com/fadedpez/bankroll/internal/discord"
	"github.com/fadedpez/bankroll/internal/logging"
)

const (
	// commandTimeout bounds a single command run
	commandTimeout = 30 * time.Second

	// processed interaction ids are kept this long to drop gateway redeliveries
	interactionTTL     = 10 * time.Minute
	interactionMaxSeen = 100
)

// Bot represents the Discord bot and its dependencies
type Bot struct {
	config   *config.Config
	session  discord.SessionHandler
	logger   *logging.Logger
	handlers map[string]Command
	commands []*discordgo.ApplicationCommand

	ctx    context.Context
	cancel context.CancelFunc

	// Interaction tracking to prevent duplicates
	interactionMu         sync.Mutex
	processedInteractions map[string]time.Time
	closing               bool

	shutdownWg sync.WaitGroup
}

// New creates a bot serving the given commands over session
func New(cfg *config.Config, session discord.SessionHandler, logger *logging.Logger, commands ...Command) *Bot {
	if logger == nil {
		logger = logging.Default
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		config:                cfg,
		session:               session,
		logger:                logger,
		handlers:              make(map[string]Command, len(commands)),
		commands:              make([]*discordgo.ApplicationCommand, 0, len(commands)),
		ctx:                   ctx,
		cancel:                cancel,
		processedInteractions: make(map[string]time.Time),
	}
	for _, cmd := range commands {
		b.handlers[cmd.Name()] = cmd
	}

	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleInteractionCreate)
}

// Start initializes the bot and connects to Discord
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}

// Shutdown stops accepting interactions, waits for running commands, removes
// development commands and closes the session.
func (b *Bot) Shutdown() {
	b.interactionMu.Lock()
	b.closing = true
	b.interactionMu.Unlock()

	b.shutdownWg.Wait()
	b.cancel()

	if b.config.IsDevelopment() {
		if err := b.cleanupCommands(); err != nil {
			b.logger.Error("Failed to clean up commands: %v", err)
		}
	}

	if err := b.session.Close(); err != nil {
		b.logger.Error("Error closing Discord session: %v", err)
	}
}

// registerCommands creates every command, scoped to the configured guild
// when there is one.
func (b *Bot) registerCommands() error {
	if b.config.IsDevelopment() {
		if err := b.cleanupCommands(); err != nil {
			return err
		}
	}

	for _, cmd := range b.handlers {
		registered, err := b.session.ApplicationCommandCreate(b.config.AppID, b.config.GuildID, cmd.Command())
		if err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name(), err)
		}
		b.commands = append(b.commands, registered)
		b.logger.Info("Registered command /%s", cmd.Name())
	}

	return nil
}

// cleanupCommands deletes every command registered for the application
func (b *Bot) cleanupCommands() error {
	existing, err := b.session.ApplicationCommands(b.config.AppID, b.config.GuildID)
	if err != nil {
		return fmt.Errorf("failed to list commands: %w", err)
	}

	for _, cmd := range existing {
		if err := b.session.ApplicationCommandDelete(b.config.AppID, b.config.GuildID, cmd.ID); err != nil {
			return fmt.Errorf("failed to delete command %s: %w", cmd.Name, err)
		}
	}

	b.commands = b.commands[:0]
	return nil
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("Bot is ready: %s#%s", r.User.Username, r.User.Discriminator)
}

// handleInteractionCreate handles Discord interaction events
func (b *Bot) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if !b.admit(i.ID, time.Now()) {
		b.logger.Debug("Skipping interaction %s: duplicate or shutting down", i.ID)
		return
	}
	defer b.shutdownWg.Done()

	b.handleSlashCommand(i)
}

// handleSlashCommand routes an application command to its handler
func (b *Bot) handleSlashCommand(i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	cmd, ok := b.handlers[name]
	if !ok {
		b.logger.Warn("Unknown command: %s", name)
		return
	}

	ctx, cancel := context.WithTimeout(b.ctx, commandTimeout)
	defer cancel()

	cmd.Handle(ctx, b.session, i)
}

// admit reserves a shutdown slot for a new interaction. It returns false when
// id was already seen or Shutdown has started; otherwise the caller must call
// shutdownWg.Done.
func (b *Bot) admit(id string, now time.Time) bool {
	b.interactionMu.Lock()
	defer b.interactionMu.Unlock()

	if b.closing || !b.markProcessed(id, now) {
		return false
	}
	b.shutdownWg.Add(1)
	return true
}

// markProcessed records id and returns false if it was already seen.
// Callers hold interactionMu.
func (b *Bot) markProcessed(id string, now time.Time) bool {
	if _, seen := b.processedInteractions[id]; seen {
		return false
	}
	b.processedInteractions[id] = now

	if len(b.processedInteractions) > interactionMaxSeen {
		for seenID, at := range b.processedInteractions {
			if now.Sub(at) > interactionTTL {
				delete(b.processedInteractions, seenID)
			}
		}
	}
	return true
}
