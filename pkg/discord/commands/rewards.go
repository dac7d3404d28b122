package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/discord"
	"github.com/fadedpez/bankroll/internal/i18n"
	"github.com/fadedpez/bankroll/internal/types"
	"github.com/fadedpez/bankroll/pkg/entities"
	currencysvc "github.com/fadedpez/bankroll/pkg/services/currency"
)

func (c *CurrencyCommand) handleDaily(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
	award, err := c.Currency.ClaimDaily(ctx, record)
	if types.IsCode(err, types.ErrCooldownActive) {
		remaining := c.Currency.Remaining(record.DailyClaimed, currencysvc.DailyCooldown)
		return discord.EditReply(s, i, discord.NoticeEmbed(types.ErrCooldownActive, t("daily.title"), t("daily.cooldown", formatDuration(remaining))))
	}
	if err != nil {
		return err
	}

	return discord.EditReply(s, i, discord.NewEmbed(t("daily.title"), t("daily.claimed", award, record.CurrencyTotal), discord.ColorGold))
}

func (c *CurrencyCommand) handleWeekly(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
	award, err := c.Currency.ClaimWeekly(ctx, record)
	if types.IsCode(err, types.ErrCooldownActive) {
		remaining := c.Currency.Remaining(record.WeeklyClaimed, currencysvc.WeeklyCooldown)
		return discord.EditReply(s, i, discord.NoticeEmbed(types.ErrCooldownActive, t("weekly.title"), t("weekly.cooldown", formatDuration(remaining))))
	}
	if err != nil {
		return err
	}

	return discord.EditReply(s, i, discord.NewEmbed(t("weekly.title"), t("weekly.claimed", award, record.CurrencyTotal), discord.ColorGold))
}

func (c *CurrencyCommand) handleView(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
	availability := func(claimedAt int64, cooldown time.Duration) string {
		if remaining := c.Currency.Remaining(claimedAt, cooldown); remaining > 0 {
			return t("view.remaining", formatDuration(remaining))
		}
		return t("view.available")
	}

	embed := discord.NewEmbed(t("view.title"), "", discord.ColorGold)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: t("common.balance"), Value: fmt.Sprintf("%d", record.CurrencyTotal)},
		{Name: t("view.daily"), Value: availability(record.DailyClaimed, currencysvc.DailyCooldown), Inline: true},
		{Name: t("view.weekly"), Value: availability(record.WeeklyClaimed, currencysvc.WeeklyCooldown), Inline: true},
		{Name: t("view.slots"), Value: fmt.Sprintf("%d", record.SlotsPlayed), Inline: true},
		{Name: t("view.twentyone"), Value: fmt.Sprintf("%d", record.TwentyOnePlayed), Inline: true},
		{Name: t("view.guess"), Value: fmt.Sprintf("%d", record.GuessPlayed), Inline: true},
	}

	return discord.EditReply(s, i, embed)
}

func (c *CurrencyCommand) handleClaim(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
	reward, err := stringOption(i, "reward")
	if err != nil {
		return err
	}

	cost, ok := RewardCosts[reward]
	if !ok {
		return discord.EditReply(s, i, discord.NoticeEmbed(types.ErrUnknownReward, t("claim.title"), t("claim.unknown")))
	}

	rewardLabel := t("reward." + reward)
	balance := record.CurrencyTotal

	err = c.Currency.Spend(ctx, record, cost)
	if types.IsCode(err, types.ErrInsufficientFunds) {
		return discord.EditReply(s, i, discord.NoticeEmbed(types.ErrInsufficientFunds, t("claim.title"), t("claim.insufficient", rewardLabel, cost, balance)))
	}
	if err != nil {
		return err
	}

	if c.ClaimChannelID != "" {
		userID := discord.UserID(i)
		notice := discord.NewEmbed(t("claim.notice_title"), t("claim.notice", userID, rewardLabel, cost), discord.ColorInfo)
		if _, err := s.ChannelMessageSendEmbed(c.ClaimChannelID, notice); err != nil {
			// nobody will grant the reward, so give the coins back
			record.CurrencyTotal += cost
			if saveErr := c.Currency.Save(ctx, record); saveErr != nil {
				c.Logger.Error("Failed to refund %d to %s after claim notice failed: %v", cost, userID, saveErr)
			}
			return types.WrapError(types.ErrNetworkError, "failed to post claim notice", err)
		}
	}

	c.Logger.Info("User %s claimed %s for %d", record.UserID, reward, cost)
	return discord.EditReply(s, i, discord.NewEmbed(t("claim.title"), t("claim.success", cost, rewardLabel, record.CurrencyTotal), discord.ColorSuccess))
}

func (c *CurrencyCommand) handleAbout(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
	return discord.EditReply(s, i, discord.NewEmbed(t("about.title"), t("about.description"), discord.ColorInfo))
}

func (c *CurrencyCommand) handleInvalid(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
	return discord.EditReply(s, i, discord.NoticeEmbed(types.ErrInvalidCommand, t("invalid.title"), t("invalid.description")))
}
