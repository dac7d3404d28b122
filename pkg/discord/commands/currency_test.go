package commands

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/discord"
	discordmock "github.com/fadedpez/bankroll/internal/discord/mock"
	"github.com/fadedpez/bankroll/internal/i18n"
	"github.com/fadedpez/bankroll/internal/logging"
	"github.com/fadedpez/bankroll/pkg/entities"
	"github.com/fadedpez/bankroll/pkg/metrics"
	"github.com/fadedpez/bankroll/pkg/repositories/analytics"
	currencyRepo "github.com/fadedpez/bankroll/pkg/repositories/currency"
	optoutRepo "github.com/fadedpez/bankroll/pkg/repositories/optout"
	currencysvc "github.com/fadedpez/bankroll/pkg/services/currency"
	"github.com/fadedpez/bankroll/pkg/services/games"
	optoutsvc "github.com/fadedpez/bankroll/pkg/services/optout"
	"github.com/fadedpez/bankroll/pkg/services/ratelimit"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) Report(ctx context.Context, errContext string, err error, i *discordgo.InteractionCreate) string {
	args := m.Called(ctx, errContext, err, i)
	return args.String(0)
}

type CurrencyCommandTestSuite struct {
	suite.Suite
	ctx        context.Context
	session    *discordmock.SessionHandler
	reporter   *mockReporter
	records    *currencyRepo.MemoryRepository
	optOuts    *optoutRepo.MemoryRepository
	sink       *analytics.MemorySink
	registry   *metrics.Registry
	translator *i18n.Translator
	t          i18n.T
	now        time.Time
	command    *CurrencyCommand
	mu         sync.Mutex
	edits      []*discordgo.MessageEmbed
	posted     []*discordgo.MessageEmbed
}

func TestCurrencyCommandSuite(t *testing.T) {
	suite.Run(t, new(CurrencyCommandTestSuite))
}

func (s *CurrencyCommandTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.session = &discordmock.SessionHandler{}
	s.session.Test(s.T())
	s.reporter = &mockReporter{}
	s.reporter.Test(s.T())
	s.records = currencyRepo.NewMemoryRepository()
	s.optOuts = optoutRepo.NewMemoryRepository()
	s.sink = analytics.NewMemorySink()
	s.registry = metrics.NewRegistry()
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.edits = nil
	s.posted = nil

	translator, err := i18n.NewTranslator()
	s.Require().NoError(err)
	s.translator = translator
	s.t = translator.For("en-US")

	logger := logging.NewLoggerWithOutput(logging.DEBUG, &bytes.Buffer{})
	s.command = NewCurrencyCommand(CurrencyDeps{
		Currency: currencysvc.NewService(s.records, s.sink,
			currencysvc.WithClock(func() time.Time { return s.now }),
			currencysvc.WithRand(rand.New(rand.NewSource(1))),
			currencysvc.WithLogger(logger),
		),
		OptOuts:        optoutsvc.NewService(s.optOuts),
		Engine:         games.NewEngine(rand.New(rand.NewSource(1))),
		Limiter:        ratelimit.NewRegistry(60, 10),
		Reporter:       s.reporter,
		Translator:     translator,
		Metrics:        s.registry,
		Logger:         logger,
		ClaimChannelID: "claims",
	})

	s.session.On("InteractionRespond", mock.Anything, mock.MatchedBy(func(r *discordgo.InteractionResponse) bool {
		return r.Type == discordgo.InteractionResponseDeferredChannelMessageWithSource
	})).Return(nil)
	s.session.On("InteractionResponseEdit", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		edit := args.Get(1).(*discordgo.WebhookEdit)
		s.mu.Lock()
		s.edits = append(s.edits, *edit.Embeds...)
		s.mu.Unlock()
	}).Return(&discordgo.Message{}, nil)
}

func (s *CurrencyCommandTestSuite) interaction(sub string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:      "interaction-1",
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "guild-1",
		Locale:  discordgo.EnglishUS,
		Member:  &discordgo.Member{User: &discordgo.User{ID: "user-1"}},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: CurrencyCommandName,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: sub, Type: discordgo.ApplicationCommandOptionSubCommand, Options: options},
			},
		},
	}}
}

func intOpt(name string, value int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func (s *CurrencyCommandTestSuite) seed(balance int64) *entities.CurrencyRecord {
	record := entities.NewCurrencyRecord("user-1")
	record.CurrencyTotal = balance
	s.Require().NoError(s.records.Save(s.ctx, record))
	return record
}

func (s *CurrencyCommandTestSuite) stored() *entities.CurrencyRecord {
	record, err := s.records.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	return record
}

func (s *CurrencyCommandTestSuite) lastEdit() *discordgo.MessageEmbed {
	s.Require().NotEmpty(s.edits)
	return s.edits[len(s.edits)-1]
}

func (s *CurrencyCommandTestSuite) TestEveryDeclaredSubcommandHasAHandler() {
	declared := s.command.Command().Options

	s.Len(s.command.handlers, len(declared))
	for _, opt := range declared {
		s.Equal(discordgo.ApplicationCommandOptionSubCommand, opt.Type)
		s.Contains(s.command.handlers, opt.Name)
	}
}

func (s *CurrencyCommandTestSuite) TestCommandDefinition() {
	cmd := s.command.Command()

	s.Equal("currency", cmd.Name)
	s.Require().NotNil(cmd.DMPermission)
	s.False(*cmd.DMPermission)

	byName := make(map[string]*discordgo.ApplicationCommandOption)
	for _, opt := range cmd.Options {
		byName[opt.Name] = opt
	}
	s.Empty(byName["daily"].Options)
	s.Empty(byName["view"].Options)

	reward := byName["claim"].Options[0]
	s.Equal("reward", reward.Name)
	s.True(reward.Required)
	s.Equal(discordgo.ApplicationCommandOptionString, reward.Type)
	var values []string
	for _, choice := range reward.Choices {
		values = append(values, choice.Value.(string))
	}
	s.Equal([]string{"monarch-colour", "monarch", "wealthy-colour", "wealthy"}, values)

	s.Equal("wager", byName["slots"].Options[0].Name)
	s.Equal("wager", byName["21"].Options[0].Name)
	s.Require().Len(byName["guess"].Options, 2)
	s.Equal("guess", byName["guess"].Options[1].Name)
	s.Equal(discordgo.ApplicationCommandOptionInteger, byName["guess"].Options[1].Type)
}

func (s *CurrencyCommandTestSuite) TestUnknownSubcommandFallsBack() {
	s.command.Handle(s.ctx, s.session, s.interaction("dice"))

	s.Equal(s.t("invalid.title"), s.lastEdit().Title)
	s.reporter.AssertNotCalled(s.T(), "Report", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CurrencyCommandTestSuite) TestOptedOutUserGetsNoReply() {
	s.Require().NoError(s.optOuts.Save(s.ctx, &entities.OptOut{UserID: "user-1", Currency: true}))

	s.command.Handle(s.ctx, s.session, s.interaction("daily"))

	s.session.AssertCalled(s.T(), "InteractionRespond", mock.Anything, mock.Anything)
	s.session.AssertNotCalled(s.T(), "InteractionResponseEdit", mock.Anything, mock.Anything)
	_, err := s.records.Get(s.ctx, "user-1")
	s.ErrorIs(err, currencyRepo.ErrRecordNotFound)
}

func (s *CurrencyCommandTestSuite) TestFirstTimeRecordIsZeroedBeforeHandler() {
	var seen *entities.CurrencyRecord
	s.command.handlers["view"] = func(ctx context.Context, sh discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
		seen = record
		stored, err := s.records.Get(ctx, record.UserID)
		s.Require().NoError(err, "record should be stored before the handler runs")
		s.Zero(stored.CurrencyTotal)
		return nil
	}

	s.command.Handle(s.ctx, s.session, s.interaction("view"))

	s.Require().NotNil(seen)
	s.Equal("user-1", seen.UserID)
	s.Zero(seen.CurrencyTotal)
	s.Zero(seen.DailyClaimed)
	s.Zero(seen.WeeklyClaimed)
	s.Zero(seen.MonthlyClaimed)
	s.Zero(seen.SlotsPlayed)
	s.Zero(seen.TwentyOnePlayed)
	s.Equal(1.0, testutil.ToFloat64(s.registry.Commands.WithLabelValues("currency", "view")))
}

func (s *CurrencyCommandTestSuite) TestHandlerErrorIsReported() {
	failure := errors.New("handler exploded")
	s.command.handlers["about"] = func(ctx context.Context, sh discord.SessionHandler, i *discordgo.InteractionCreate, t i18n.T, record *entities.CurrencyRecord) error {
		return failure
	}
	s.reporter.On("Report", mock.Anything, "currency group command", failure, mock.Anything).Return("err-123")

	s.command.Handle(s.ctx, s.session, s.interaction("about"))

	embed := s.lastEdit()
	s.Equal(s.t("error.title"), embed.Title)
	s.Equal(s.t("error.description", "currency group", "err-123"), embed.Description)
	s.Equal(discord.ColorError, embed.Color)
	s.reporter.AssertExpectations(s.T())
	s.Zero(testutil.ToFloat64(s.registry.Commands.WithLabelValues("currency", "about")))
}

func (s *CurrencyCommandTestSuite) TestOptOutLookupErrorIsReported() {
	s.command.OptOuts = optoutsvc.NewService(brokenOptOuts{})
	s.reporter.On("Report", mock.Anything, "currency group command", mock.Anything, mock.Anything).Return("err-456")

	s.command.Handle(s.ctx, s.session, s.interaction("view"))

	s.Equal("err-456", s.lastEdit().Footer.Text)
}

type brokenOptOuts struct{}

func (brokenOptOuts) Get(ctx context.Context, userID string) (*entities.OptOut, error) {
	return nil, errors.New("connection refused")
}

func (brokenOptOuts) Save(ctx context.Context, optOut *entities.OptOut) error {
	return errors.New("connection refused")
}

func (s *CurrencyCommandTestSuite) TestDaily() {
	s.command.Handle(s.ctx, s.session, s.interaction("daily"))

	record := s.stored()
	s.GreaterOrEqual(record.CurrencyTotal, int64(currencysvc.DailyBase))
	s.Equal(s.now.UnixMilli(), record.DailyClaimed)
	s.Equal(s.t("daily.claimed", record.CurrencyTotal, record.CurrencyTotal), s.lastEdit().Description)

	s.now = s.now.Add(90 * time.Minute)
	s.command.Handle(s.ctx, s.session, s.interaction("daily"))

	s.Contains(s.lastEdit().Description, s.t("daily.cooldown", "22h 30m"))
	s.Equal(record.CurrencyTotal, s.stored().CurrencyTotal)
}

func (s *CurrencyCommandTestSuite) TestWeekly() {
	s.command.Handle(s.ctx, s.session, s.interaction("weekly"))

	record := s.stored()
	s.GreaterOrEqual(record.CurrencyTotal, int64(currencysvc.WeeklyBase))
	s.Equal(s.now.UnixMilli(), record.WeeklyClaimed)

	s.now = s.now.Add(24 * time.Hour)
	s.command.Handle(s.ctx, s.session, s.interaction("weekly"))

	s.Contains(s.lastEdit().Description, s.t("weekly.cooldown", "6d"))
}

func (s *CurrencyCommandTestSuite) TestView() {
	record := s.seed(1234)
	record.DailyClaimed = s.now.Add(-time.Hour).UnixMilli()
	record.SlotsPlayed = 7
	s.Require().NoError(s.records.Save(s.ctx, record))

	s.command.Handle(s.ctx, s.session, s.interaction("view"))

	embed := s.lastEdit()
	s.Equal(s.t("view.title"), embed.Title)
	s.Require().Len(embed.Fields, 6)
	s.Equal("1234", embed.Fields[0].Value)
	s.Equal(s.t("view.remaining", "23h"), embed.Fields[1].Value)
	s.Equal(s.t("view.available"), embed.Fields[2].Value)
	s.Equal("7", embed.Fields[3].Value)
}

func (s *CurrencyCommandTestSuite) TestAbout() {
	s.command.Handle(s.ctx, s.session, s.interaction("about"))

	s.Equal(s.t("about.title"), s.lastEdit().Title)
}

func (s *CurrencyCommandTestSuite) TestClaimInsufficient() {
	s.seed(100)

	s.command.Handle(s.ctx, s.session, s.interaction("claim", stringOpt("reward", "monarch")))

	s.Contains(s.lastEdit().Description, s.t("claim.insufficient", s.t("reward.monarch"), 5000, 100))
	s.Equal(int64(100), s.stored().CurrencyTotal)
	s.session.AssertNotCalled(s.T(), "ChannelMessageSendEmbed", mock.Anything, mock.Anything)
}

func (s *CurrencyCommandTestSuite) TestClaimPostsNotice() {
	s.seed(8000)
	s.session.On("ChannelMessageSendEmbed", "claims", mock.Anything).Run(func(args mock.Arguments) {
		s.posted = append(s.posted, args.Get(1).(*discordgo.MessageEmbed))
	}).Return(&discordgo.Message{}, nil)

	s.command.Handle(s.ctx, s.session, s.interaction("claim", stringOpt("reward", "wealthy-colour")))

	s.Equal(int64(500), s.stored().CurrencyTotal)
	s.Require().Len(s.posted, 1)
	s.Equal(s.t("claim.notice", "user-1", s.t("reward.wealthy-colour"), 7500), s.posted[0].Description)
	s.Equal(s.t("claim.success", 7500, s.t("reward.wealthy-colour"), 500), s.lastEdit().Description)
}

func (s *CurrencyCommandTestSuite) TestClaimRefundsWhenNoticeFails() {
	s.seed(3000)
	s.session.On("ChannelMessageSendEmbed", "claims", mock.Anything).
		Return((*discordgo.Message)(nil), errors.New("missing permissions"))
	s.reporter.On("Report", mock.Anything, "currency group command", mock.Anything, mock.Anything).Return("err-789")

	s.command.Handle(s.ctx, s.session, s.interaction("claim", stringOpt("reward", "monarch-colour")))

	s.Equal(int64(3000), s.stored().CurrencyTotal)
	s.Equal("err-789", s.lastEdit().Footer.Text)
}

func (s *CurrencyCommandTestSuite) TestClaimUnknownReward() {
	s.seed(99999)

	s.command.Handle(s.ctx, s.session, s.interaction("claim", stringOpt("reward", "yacht")))

	s.Contains(s.lastEdit().Description, s.t("claim.unknown"))
	s.Equal(int64(99999), s.stored().CurrencyTotal)
}

func (s *CurrencyCommandTestSuite) TestSlots() {
	s.seed(100)

	s.command.Handle(s.ctx, s.session, s.interaction("slots", intOpt("wager", 10)))

	record := s.stored()
	s.Equal(int64(1), record.SlotsPlayed)
	s.Contains([]int64{90, 110, 150}, record.CurrencyTotal)
	s.Require().Len(s.sink.Plays(), 1)
	s.Equal(entities.GameSlots, s.sink.Plays()[0].Game)
	s.Equal(record.CurrencyTotal, s.sink.Plays()[0].BalanceAfter)
	s.Equal("guild-1", s.sink.Plays()[0].GuildID)
}

func (s *CurrencyCommandTestSuite) TestWagerValidation() {
	s.seed(5)

	s.command.Handle(s.ctx, s.session, s.interaction("slots", intOpt("wager", 0)))
	s.Contains(s.lastEdit().Description, s.t("wager.invalid"))

	s.command.Handle(s.ctx, s.session, s.interaction("21", intOpt("wager", 6)))
	s.Contains(s.lastEdit().Description, s.t("wager.insufficient", 6, 5))

	record := s.stored()
	s.Equal(int64(5), record.CurrencyTotal)
	s.Zero(record.SlotsPlayed)
	s.Zero(record.TwentyOnePlayed)
	s.Empty(s.sink.Plays())
}

func (s *CurrencyCommandTestSuite) TestTwentyOne() {
	s.seed(100)

	s.command.Handle(s.ctx, s.session, s.interaction("21", intOpt("wager", 20)))

	record := s.stored()
	s.Equal(int64(1), record.TwentyOnePlayed)
	s.Contains([]int64{80, 100, 120, 130}, record.CurrencyTotal)
	s.Len(s.lastEdit().Fields, 3)
}

func (s *CurrencyCommandTestSuite) TestGuess() {
	s.seed(100)

	s.command.Handle(s.ctx, s.session, s.interaction("guess", intOpt("wager", 10), intOpt("guess", 50)))

	record := s.stored()
	s.Equal(int64(1), record.GuessPlayed)
	s.Contains([]int64{90, 100, 110, 200}, record.CurrencyTotal)
}

func (s *CurrencyCommandTestSuite) TestGuessOutOfRange() {
	s.seed(100)

	s.command.Handle(s.ctx, s.session, s.interaction("guess", intOpt("wager", 10), intOpt("guess", 101)))

	s.Contains(s.lastEdit().Description, s.t("guess.range"))
	s.Zero(s.stored().GuessPlayed)
}

func (s *CurrencyCommandTestSuite) TestRateLimited() {
	s.seed(100)
	s.command.Limiter = ratelimit.NewRegistry(1, 1)

	s.command.Handle(s.ctx, s.session, s.interaction("slots", intOpt("wager", 1)))
	s.command.Handle(s.ctx, s.session, s.interaction("slots", intOpt("wager", 1)))

	s.Contains(s.lastEdit().Description, s.t("notice.slow_down"))
	s.Equal(int64(1), s.stored().SlotsPlayed)
	s.Equal(1.0, testutil.ToFloat64(s.registry.RateLimited))
}

func (s *CurrencyCommandTestSuite) handleConcurrently(n int, i *discordgo.InteractionCreate) {
	var wg sync.WaitGroup
	for k := 0; k < n; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.command.Handle(s.ctx, s.session, i)
		}()
	}
	wg.Wait()
}

func (s *CurrencyCommandTestSuite) countEdits(contains string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, embed := range s.edits {
		if strings.Contains(embed.Description, contains) {
			count++
		}
	}
	return count
}

func (s *CurrencyCommandTestSuite) TestConcurrentClaimsSpendOnce() {
	s.seed(5000)
	var posts int
	s.session.On("ChannelMessageSendEmbed", "claims", mock.Anything).Run(func(args mock.Arguments) {
		s.mu.Lock()
		posts++
		s.mu.Unlock()
	}).Return(&discordgo.Message{}, nil)

	s.handleConcurrently(8, s.interaction("claim", stringOpt("reward", "monarch")))

	s.Equal(int64(0), s.stored().CurrencyTotal)
	s.Equal(1, posts)
	s.Equal(7, s.countEdits(s.t("claim.insufficient", s.t("reward.monarch"), 5000, 0)))
}

func (s *CurrencyCommandTestSuite) TestConcurrentDailyClaimsAwardOnce() {
	s.handleConcurrently(8, s.interaction("daily"))

	record := s.stored()
	s.GreaterOrEqual(record.CurrencyTotal, int64(currencysvc.DailyBase))
	s.LessOrEqual(record.CurrencyTotal, int64(currencysvc.DailyBase+currencysvc.DailySpread))
	s.Equal(1, s.countEdits(s.t("daily.claimed", record.CurrencyTotal, record.CurrencyTotal)))
	s.Equal(7, s.countEdits(s.t("daily.cooldown", "1d")))
}

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		in       time.Duration
		expected string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{61 * time.Second, "2m"},
		{3*time.Hour + 12*time.Minute, "3h 12m"},
		{22*time.Hour + 30*time.Minute, "22h 30m"},
		{6 * 24 * time.Hour, "6d"},
		{6*24*time.Hour + 4*time.Hour + 5*time.Minute, "6d 4h"},
	}

	for _, tc := range testCases {
		if got := formatDuration(tc.in); got != tc.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.in, got, tc.expected)
		}
	}
}
