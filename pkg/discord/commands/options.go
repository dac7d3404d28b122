package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/types"
	"github.com/fadedpez/bankroll/pkg/entities"
)

// subcommand returns the invoked subcommand option, or nil
func subcommand(i *discordgo.InteractionCreate) *discordgo.ApplicationCommandInteractionDataOption {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return opt
		}
	}
	return nil
}

func subcommandName(i *discordgo.InteractionCreate) string {
	if sub := subcommand(i); sub != nil {
		return sub.Name
	}
	return ""
}

func findOption(i *discordgo.InteractionCreate, name string) *discordgo.ApplicationCommandInteractionDataOption {
	sub := subcommand(i)
	if sub == nil {
		return nil
	}
	for _, opt := range sub.Options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

func intOption(i *discordgo.InteractionCreate, name string) (int64, error) {
	opt := findOption(i, name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, types.NewError(types.ErrInvalidArgument, fmt.Sprintf("missing integer option %q", name))
	}
	return opt.IntValue(), nil
}

func stringOption(i *discordgo.InteractionCreate, name string) (string, error) {
	opt := findOption(i, name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionString {
		return "", types.NewError(types.ErrInvalidArgument, fmt.Sprintf("missing string option %q", name))
	}
	return opt.StringValue(), nil
}

// formatDuration renders a wait such as "6d 4h", "3h 12m" or "45s"
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()+0.5))
	}

	// partial minutes count as a whole minute
	minutes := int64((d + time.Minute - 1) / time.Minute)
	days := minutes / (24 * 60)
	hours := (minutes % (24 * 60)) / 60
	mins := minutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 && days == 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	return strings.Join(parts, " ")
}

func formatCards(cards []*entities.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
