package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/i18n"
	"github.com/fadedpez/bankroll/internal/types"
)

// Embed colours
const (
	ColorGold    = 0xFFD700
	ColorSuccess = 0x2ECC71
	ColorNotice  = 0xF1C40F
	ColorError   = 0xE74C3C
	ColorInfo    = 0x3498DB
)

// ResponseEmoji maps error codes to appropriate emojis
var ResponseEmoji = map[types.ErrorCode]string{
	types.ErrInsufficientFunds: "💸",
	types.ErrInvalidWager:      "🎲",
	types.ErrCooldownActive:    "⏳",
	types.ErrUnknownReward:     "🎁",
	types.ErrInvalidCommand:    "⛔",
	types.ErrInvalidArgument:   "❗",
	types.ErrRateLimited:       "⏱️",
	types.ErrInternalError:     "💥",
	types.ErrNetworkError:      "🌐",
	types.ErrDatabaseError:     "💾",
}

// NewEmbed creates an embed stamped with the current time
func NewEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// NoticeEmbed creates a yellow embed for conditions the user can fix
func NoticeEmbed(code types.ErrorCode, title, description string) *discordgo.MessageEmbed {
	emoji := ResponseEmoji[code]
	if emoji == "" {
		emoji = "❌"
	}
	return NewEmbed(title, fmt.Sprintf("%s %s", emoji, description), ColorNotice)
}

// ErrorEmbed creates the embed shown when a command fails, referencing the
// id returned by the error reporter.
func ErrorEmbed(t i18n.T, command, errorID string) *discordgo.MessageEmbed {
	embed := NewEmbed(t("error.title"), t("error.description", command, errorID), ColorError)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: errorID}
	return embed
}

// DeferReply acknowledges an interaction so the reply can be edited later
func DeferReply(s SessionHandler, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// EditReply replaces the deferred reply with the given embeds
func EditReply(s SessionHandler, i *discordgo.InteractionCreate, embeds ...*discordgo.MessageEmbed) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &embeds,
	})
	return err
}

// UserID returns the id of the user who triggered the interaction, whether
// it came from a guild (Member) or a DM (User).
func UserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
