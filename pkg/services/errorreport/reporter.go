package errorreport

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/discord"
	"github.com/fadedpez/bankroll/internal/logging"
	"github.com/fadedpez/bankroll/pkg/entities"
	"github.com/fadedpez/bankroll/pkg/metrics"
	"github.com/fadedpez/bankroll/pkg/repositories/analytics"
	"github.com/google/uuid"
)

// maxDebugMessage keeps debug embeds inside Discord's description limit
const maxDebugMessage = 1800

// Reporter records command failures and hands back an id the user can quote
type Reporter struct {
	logger         *logging.Logger
	sink           analytics.Sink
	metrics        *metrics.Registry
	session        discord.SessionHandler
	debugChannelID string
	now            func() time.Time
}

type Option func(*Reporter)

// WithDebugChannel posts an embed for every report to channelID
func WithDebugChannel(session discord.SessionHandler, channelID string) Option {
	return func(r *Reporter) {
		r.session = session
		r.debugChannelID = channelID
	}
}

func WithMetrics(registry *metrics.Registry) Option {
	return func(r *Reporter) { r.metrics = registry }
}

func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

func NewReporter(logger *logging.Logger, sink analytics.Sink, opts ...Option) *Reporter {
	r := &Reporter{
		logger: logger,
		sink:   sink,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report logs err, stores it and returns its id. It never fails: problems
// persisting the report are logged and the id is still returned.
func (r *Reporter) Report(ctx context.Context, errContext string, err error, i *discordgo.InteractionCreate) string {
	report := &entities.ErrorReport{
		ID:         uuid.New().String(),
		Context:    errContext,
		OccurredAt: r.now(),
	}
	if err != nil {
		report.Message = err.Error()
	}
	if i != nil && i.Interaction != nil {
		report.GuildID = i.GuildID
		report.UserID = discord.UserID(i)
		if i.Type == discordgo.InteractionApplicationCommand {
			report.Command = commandPath(i.ApplicationCommandData())
		}
	}

	r.logger.WithFields(logging.Fields{
		"error_id": report.ID,
		"context":  report.Context,
		"guild_id": report.GuildID,
		"user_id":  report.UserID,
		"command":  report.Command,
	}).Error("%s: %s", report.Context, report.Message)

	if r.metrics != nil {
		r.metrics.MarkError(errContext)
	}

	if r.sink != nil {
		if sinkErr := r.sink.IndexError(ctx, report); sinkErr != nil {
			r.logger.Warn("Failed to store error report %s: %v", report.ID, sinkErr)
		}
	}

	if r.session != nil && r.debugChannelID != "" {
		if _, sendErr := r.session.ChannelMessageSendEmbed(r.debugChannelID, debugEmbed(report)); sendErr != nil {
			r.logger.Warn("Failed to post error report %s to debug channel: %v", report.ID, sendErr)
		}
	}

	return report.ID
}

func commandPath(data discordgo.ApplicationCommandInteractionData) string {
	path := data.Name
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			path += " " + opt.Name
		}
	}
	return path
}

func debugEmbed(report *entities.ErrorReport) *discordgo.MessageEmbed {
	message := report.Message
	if len(message) > maxDebugMessage {
		cut := maxDebugMessage
		for cut > 0 && !utf8.RuneStart(message[cut]) {
			cut--
		}
		message = message[:cut] + "…"
	}

	embed := discord.NewEmbed(report.Context, fmt.Sprintf("```\n%s\n```", message), discord.ColorError)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Command", Value: orDash(report.Command), Inline: true},
		{Name: "User", Value: orDash(report.UserID), Inline: true},
		{Name: "Guild", Value: orDash(report.GuildID), Inline: true},
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: report.ID}
	return embed
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
