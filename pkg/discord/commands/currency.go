package commands

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/discord"
	"github.com/fadedpez/bankroll/internal/i18n"
	"github.com/fadedpez/bankroll/internal/logging"
	"github.com/fadedpez/bankroll/internal/types"
	"github.com/fadedpez/bankroll/pkg/entities"
	"github.com/fadedpez/bankroll/pkg/metrics"
	currencysvc "github.com/fadedpez/bankroll/pkg/services/currency"
	"github.com/fadedpez/bankroll/pkg/services/games"
	optoutsvc "github.com/fadedpez/bankroll/pkg/services/optout"
	"github.com/fadedpez/bankroll/pkg/services/ratelimit"
)

const (
	CurrencyCommandName = "currency"

	// errorContext labels failures of this command in reports and metrics
	errorContext = "currency group command"
	// errorCommandLabel is the command name shown in the error embed
	errorCommandLabel = "currency group"
)

// Handler runs one currency subcommand against the caller's record. The
// interaction has already been deferred.
type Handler func(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error

// ErrorReporter stores a failure and returns an id the user can quote
type ErrorReporter interface {
	Report(ctx context.Context, errContext string, err error, i *discordgo.InteractionCreate) string
}

// CurrencyDeps are the collaborators of the currency command
type CurrencyDeps struct {
	Currency       *currencysvc.Service
	OptOuts        *optoutsvc.Service
	Engine         *games.Engine
	Limiter        *ratelimit.Registry
	Reporter       ErrorReporter
	Translator     *i18n.Translator
	Metrics        *metrics.Registry
	Logger         *logging.Logger
	ClaimChannelID string
}

// CurrencyCommand handles /currency and its subcommands
type CurrencyCommand struct {
	CurrencyDeps
	handlers map[string]Handler
}

// NewCurrencyCommand creates the command and its subcommand table
func NewCurrencyCommand(deps CurrencyDeps) *CurrencyCommand {
	if deps.Logger == nil {
		deps.Logger = logging.Default
	}

	c := &CurrencyCommand{CurrencyDeps: deps}
	c.handlers = map[string]Handler{
		"daily":  c.handleDaily,
		"weekly": c.handleWeekly,
		"view":   c.handleView,
		"claim":  c.handleClaim,
		"about":  c.handleAbout,
		"slots":  c.handleSlots,
		"21":     c.handleTwentyOne,
		"guess":  c.handleGuess,
	}
	return c
}

// Name implements the bot's command interface
func (c *CurrencyCommand) Name() string {
	return CurrencyCommandName
}

// Handler returns the handler for a subcommand, or the invalid-subcommand
// handler when the name is unknown.
func (c *CurrencyCommand) Handler(subcommand string) Handler {
	if handler, ok := c.handlers[subcommand]; ok {
		return handler
	}
	return c.handleInvalid
}

// Handle runs the command. Any failure is reported and the deferred reply is
// replaced with an error embed carrying the report id.
func (c *CurrencyCommand) Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) {
	t := c.Translator.For(string(i.Locale))

	if err := c.run(ctx, s, i, t); err != nil {
		id := c.Reporter.Report(ctx, errorContext, err, i)
		if editErr := discord.EditReply(s, i, discord.ErrorEmbed(t, errorCommandLabel, id)); editErr != nil {
			c.Logger.Error("Failed to send error embed for report %s: %v", id, editErr)
		}
	}
}

func (c *CurrencyCommand) run(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T) error {
	if err := discord.DeferReply(s, i); err != nil {
		return types.WrapError(types.ErrNetworkError, "failed to defer reply", err)
	}

	userID := discord.UserID(i)

	optedOut, err := c.OptOuts.IsOptedOutOfCurrency(ctx, userID)
	if err != nil {
		return err
	}
	if optedOut {
		c.Logger.Debug("User %s has opted out of currency, ignoring", userID)
		return nil
	}

	unlock := c.Currency.LockUser(userID)
	defer unlock()

	record, _, err := c.Currency.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	name := subcommandName(i)
	if err := c.Handler(name)(ctx, s, i, t, record); err != nil {
		return err
	}

	if c.Metrics != nil {
		c.Metrics.MarkCommand(CurrencyCommandName, name)
	}
	return nil
}
