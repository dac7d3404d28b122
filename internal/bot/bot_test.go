package bot

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/bankroll/internal/config"
	"github.com/fadedpez/bankroll/internal/discord"
	discordmock "github.com/fadedpez/bankroll/internal/discord/mock"
	"github.com/fadedpez/bankroll/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockCommand struct {
	mock.Mock
	name string
}

func (m *mockCommand) Name() string {
	return m.name
}

func (m *mockCommand) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: m.name, Description: "test description"}
}

func (m *mockCommand) Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) {
	m.Called(ctx, s, i)
}

type BotTestSuite struct {
	suite.Suite
	session *discordmock.SessionHandler
	config  *config.Config
	command *mockCommand
	bot     *Bot
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}

func (s *BotTestSuite) SetupTest() {
	s.session = &discordmock.SessionHandler{}
	s.session.Test(s.T())
	s.config = &config.Config{
		AppID:       "test-app-id",
		GuildID:     "test-guild-id",
		Environment: "development",
	}
	s.command = &mockCommand{name: "currency"}
	s.command.Test(s.T())

	s.session.On("AddHandler", mock.AnythingOfType("func(*discordgo.Session, *discordgo.Ready)")).Return(func() {})
	s.session.On("AddHandler", mock.AnythingOfType("func(*discordgo.Session, *discordgo.InteractionCreate)")).Return(func() {})

	logger := logging.NewLoggerWithOutput(logging.DEBUG, &bytes.Buffer{})
	s.bot = New(s.config, s.session, logger, s.command)
}

func interaction(id, name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:   id,
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: name,
			},
		},
	}
}

func (s *BotTestSuite) TestRegisterCommands() {
	s.session.On("Open").Return(nil)

	// development mode clears what is already registered
	existingCmd := &discordgo.ApplicationCommand{ID: "existing-cmd-id", Name: "existing-cmd"}
	s.session.On("ApplicationCommands", s.config.AppID, s.config.GuildID).
		Return([]*discordgo.ApplicationCommand{existingCmd}, nil)
	s.session.On("ApplicationCommandDelete", s.config.AppID, s.config.GuildID, existingCmd.ID).
		Return(nil)

	registeredCmd := &discordgo.ApplicationCommand{ID: "new-cmd-id", Name: "currency"}
	s.session.On("ApplicationCommandCreate", s.config.AppID, s.config.GuildID, mock.MatchedBy(func(cmd *discordgo.ApplicationCommand) bool {
		return cmd.Name == "currency"
	})).Return(registeredCmd, nil)

	err := s.bot.Start()

	s.Require().NoError(err)
	s.session.AssertExpectations(s.T())
	s.Equal([]*discordgo.ApplicationCommand{registeredCmd}, s.bot.commands)
}

func (s *BotTestSuite) TestRegisterCommandsProduction() {
	s.config.Environment = "production"
	s.session.On("Open").Return(nil)
	s.session.On("ApplicationCommandCreate", s.config.AppID, s.config.GuildID, mock.Anything).
		Return(&discordgo.ApplicationCommand{ID: "new-cmd-id"}, nil)

	s.Require().NoError(s.bot.Start())

	s.session.AssertNotCalled(s.T(), "ApplicationCommands", mock.Anything, mock.Anything)
}

func (s *BotTestSuite) TestRegisterCommandsError() {
	s.session.On("Open").Return(nil)
	s.session.On("ApplicationCommands", s.config.AppID, s.config.GuildID).
		Return([]*discordgo.ApplicationCommand{}, nil)
	s.session.On("ApplicationCommandCreate", s.config.AppID, s.config.GuildID, mock.Anything).
		Return(&discordgo.ApplicationCommand{}, assert.AnError)

	err := s.bot.Start()

	s.Require().Error(err)
	s.ErrorIs(err, assert.AnError)
	s.Empty(s.bot.commands)
}

func (s *BotTestSuite) TestStartOpenError() {
	s.session.On("Open").Return(assert.AnError)

	err := s.bot.Start()

	s.Require().Error(err)
	s.session.AssertNotCalled(s.T(), "ApplicationCommandCreate", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BotTestSuite) TestCleanupCommands() {
	existingCmds := []*discordgo.ApplicationCommand{
		{ID: "cmd1", Name: "test1"},
		{ID: "cmd2", Name: "test2"},
	}
	s.session.On("ApplicationCommands", s.config.AppID, s.config.GuildID).Return(existingCmds, nil)
	for _, cmd := range existingCmds {
		s.session.On("ApplicationCommandDelete", s.config.AppID, s.config.GuildID, cmd.ID).Return(nil)
	}

	err := s.bot.cleanupCommands()

	s.Require().NoError(err)
	s.session.AssertExpectations(s.T())
}

func (s *BotTestSuite) TestCleanupCommandsError() {
	s.session.On("ApplicationCommands", s.config.AppID, s.config.GuildID).
		Return([]*discordgo.ApplicationCommand{}, assert.AnError)

	err := s.bot.cleanupCommands()

	s.Require().Error(err)
}

func (s *BotTestSuite) TestShutdown() {
	s.session.On("ApplicationCommands", s.config.AppID, s.config.GuildID).
		Return([]*discordgo.ApplicationCommand{}, nil)
	s.session.On("Close").Return(nil)

	s.bot.Shutdown()

	s.session.AssertExpectations(s.T())
	s.Error(s.bot.ctx.Err())
}

func (s *BotTestSuite) TestShutdownWaitsForRunningCommand() {
	started := make(chan struct{})
	release := make(chan struct{})
	running := interaction("interaction-1", "currency")
	s.command.On("Handle", mock.Anything, s.session, running).Run(func(args mock.Arguments) {
		close(started)
		<-release
		s.NoError(args.Get(0).(context.Context).Err())
	}).Return()
	s.session.On("ApplicationCommands", s.config.AppID, s.config.GuildID).
		Return([]*discordgo.ApplicationCommand{}, nil)
	s.session.On("Close").Return(nil)

	go s.bot.handleInteractionCreate(nil, running)
	<-started

	done := make(chan struct{})
	go func() {
		s.bot.Shutdown()
		close(done)
	}()

	s.Eventually(func() bool {
		s.bot.interactionMu.Lock()
		defer s.bot.interactionMu.Unlock()
		return s.bot.closing
	}, time.Second, 5*time.Millisecond)

	// intake is closed while the first command is still running
	s.bot.handleInteractionCreate(nil, interaction("interaction-2", "currency"))
	s.command.AssertNumberOfCalls(s.T(), "Handle", 1)

	s.Never(func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond)
	s.session.AssertNotCalled(s.T(), "Close")

	close(release)
	s.Eventually(func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	s.session.AssertCalled(s.T(), "Close")
	s.Error(s.bot.ctx.Err())
}

func (s *BotTestSuite) TestAdmitRefusesAfterShutdownStarts() {
	s.True(s.bot.admit("interaction-1", time.Now()))
	s.bot.shutdownWg.Done()

	s.bot.interactionMu.Lock()
	s.bot.closing = true
	s.bot.interactionMu.Unlock()

	s.False(s.bot.admit("interaction-2", time.Now()))
	s.NotContains(s.bot.processedInteractions, "interaction-2")
}

func (s *BotTestSuite) TestHandleInteractionRoutesByName() {
	i := interaction("interaction-1", "currency")
	s.command.On("Handle", mock.Anything, s.session, i).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		_, hasDeadline := ctx.Deadline()
		s.True(hasDeadline)
	}).Return()

	s.bot.handleInteractionCreate(nil, i)

	s.command.AssertNumberOfCalls(s.T(), "Handle", 1)
}

func (s *BotTestSuite) TestHandleInteractionSkipsDuplicates() {
	i := interaction("interaction-1", "currency")
	s.command.On("Handle", mock.Anything, s.session, i).Return()

	s.bot.handleInteractionCreate(nil, i)
	s.bot.handleInteractionCreate(nil, i)

	s.command.AssertNumberOfCalls(s.T(), "Handle", 1)
}

func (s *BotTestSuite) TestHandleInteractionUnknownCommand() {
	s.bot.handleInteractionCreate(nil, interaction("interaction-1", "blackjack"))

	s.command.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BotTestSuite) TestHandleInteractionIgnoresComponents() {
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "interaction-1",
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: "button"},
	}}

	s.bot.handleInteractionCreate(nil, i)

	s.command.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BotTestSuite) TestMarkProcessedPrunesOldIDs() {
	start := time.Now()
	for n := 0; n < interactionMaxSeen; n++ {
		s.True(s.bot.markProcessed(fmt.Sprintf("old-%d", n), start))
	}

	later := start.Add(interactionTTL + time.Minute)
	s.True(s.bot.markProcessed("new", later))

	s.Len(s.bot.processedInteractions, 1)
	s.True(s.bot.markProcessed("old-0", later))
	s.False(s.bot.markProcessed("new", later))
}
