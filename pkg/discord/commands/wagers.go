package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/discord"
	"github.com/fadedpez/bankroll/internal/i18n"
	"github.com/fadedpez/bankroll/internal/types"
	"github.com/fadedpez/bankroll/pkg/entities"
	"github.com/fadedpez/bankroll/pkg/services/games"
)

// openWager checks the rate limit and the wager. It returns false after
// replying with a notice when the round should not be played.
func (c *CurrencyCommand) openWager(s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, title string, record *entities.CurrencyRecord, wager int64) (bool, error) {
	if c.Limiter != nil && !c.Limiter.Allow(record.UserID) {
		if c.Metrics != nil {
			c.Metrics.RateLimited.Inc()
		}
		return false, discord.EditReply(s, i, discord.NoticeEmbed(types.ErrRateLimited, title, t("notice.slow_down")))
	}

	err := c.Currency.ValidateWager(record, wager)
	switch {
	case err == nil:
		return true, nil
	case types.IsCode(err, types.ErrInvalidWager):
		return false, discord.EditReply(s, i, discord.NoticeEmbed(types.ErrInvalidWager, title, t("wager.invalid")))
	case types.IsCode(err, types.ErrInsufficientFunds):
		return false, discord.EditReply(s, i, discord.NoticeEmbed(types.ErrInsufficientFunds, title, t("wager.insufficient", wager, record.CurrencyTotal)))
	default:
		return false, err
	}
}

// settle books the round and returns the balance field for the reply
func (c *CurrencyCommand) settle(ctx context.Context, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord, game entities.GameType, wager, delta int64, outcome entities.Outcome) (*discordgo.MessageEmbedField, error) {
	if _, err := c.Currency.Settle(ctx, record, i.GuildID, game, wager, delta, outcome); err != nil {
		return nil, err
	}
	if c.Metrics != nil {
		c.Metrics.MarkPlay(string(game), string(outcome))
	}
	return &discordgo.MessageEmbedField{Name: t("common.balance"), Value: fmt.Sprintf("%d", record.CurrencyTotal)}, nil
}

func outcomeColor(outcome entities.Outcome) int {
	switch {
	case outcome.IsWin():
		return discord.ColorSuccess
	case outcome == entities.OutcomePush:
		return discord.ColorInfo
	default:
		return discord.ColorError
	}
}

func (c *CurrencyCommand) handleSlots(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
	wager, err := intOption(i, "wager")
	if err != nil {
		return err
	}
	if ok, err := c.openWager(s, i, t, t("slots.title"), record, wager); !ok {
		return err
	}

	result := c.Engine.Slots(wager)
	balance, err := c.settle(ctx, i, t, record, entities.GameSlots, wager, result.Delta, result.Outcome)
	if err != nil {
		return err
	}

	var message string
	switch result.Outcome {
	case entities.OutcomeJackpot:
		message = t("slots.jackpot", result.Delta)
	case entities.OutcomeWin:
		message = t("slots.win", result.Delta)
	default:
		message = t("slots.loss", wager)
	}

	embed := discord.NewEmbed(t("slots.title"), fmt.Sprintf("%s\n\n%s", strings.Join(result.Reels, " | "), message), outcomeColor(result.Outcome))
	embed.Fields = []*discordgo.MessageEmbedField{balance}
	return discord.EditReply(s, i, embed)
}

func (c *CurrencyCommand) handleTwentyOne(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
	wager, err := intOption(i, "wager")
	if err != nil {
		return err
	}
	if ok, err := c.openWager(s, i, t, t("twentyone.title"), record, wager); !ok {
		return err
	}

	result := c.Engine.TwentyOne(wager)
	balance, err := c.settle(ctx, i, t, record, entities.GameTwentyOne, wager, result.Delta, result.Outcome)
	if err != nil {
		return err
	}

	var message string
	switch result.Outcome {
	case entities.OutcomeBlackjack:
		message = t("twentyone.blackjack", result.Delta)
	case entities.OutcomeWin:
		message = t("twentyone.win", result.Delta)
	case entities.OutcomePush:
		message = t("twentyone.push")
	default:
		message = t("twentyone.loss", wager)
	}

	embed := discord.NewEmbed(t("twentyone.title"), message, outcomeColor(result.Outcome))
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: t("twentyone.player", result.PlayerScore), Value: formatCards(result.PlayerCards), Inline: true},
		{Name: t("twentyone.dealer", result.DealerScore), Value: formatCards(result.DealerCards), Inline: true},
		balance,
	}
	return discord.EditReply(s, i, embed)
}

func (c *CurrencyCommand) handleGuess(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
	wager, err := intOption(i, "wager")
	if err != nil {
		return err
	}
	guess, err := intOption(i, "guess")
	if err != nil {
		return err
	}
	if guess < games.GuessMin || guess > games.GuessMax {
		return discord.EditReply(s, i, discord.NoticeEmbed(types.ErrInvalidArgument, t("guess.title"), t("guess.range")))
	}
	if ok, err := c.openWager(s, i, t, t("guess.title"), record, wager); !ok {
		return err
	}

	result, err := c.Engine.Guess(wager, guess)
	if err != nil {
		return err
	}
	balance, err := c.settle(ctx, i, t, record, entities.GameGuess, wager, result.Delta, result.Outcome)
	if err != nil {
		return err
	}

	var message string
	switch result.Outcome {
	case entities.OutcomeJackpot:
		message = t("guess.exact", result.Delta)
	case entities.OutcomeWin:
		message = t("guess.close", result.Delta)
	case entities.OutcomePush:
		message = t("guess.push")
	default:
		message = t("guess.loss", wager)
	}

	embed := discord.NewEmbed(t("guess.title"), fmt.Sprintf("%s\n%s", t("guess.result", result.Guess, result.Target), message), outcomeColor(result.Outcome))
	embed.Fields = []*discordgo.MessageEmbedField{balance}
	return discord.EditReply(s, i, embed)
}
