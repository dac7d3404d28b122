package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/discord"
)

// Command is a slash command the bot registers and routes to
type Command interface {
	Name() string
	Command() *discordgo.ApplicationCommand
	Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate)
}
