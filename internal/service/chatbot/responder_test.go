package chatbot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jevon1999/api-presensi/internal/config"
	"github.com/Jevon1999/api-presensi/internal/domain/command"
	mock_waha "github.com/Jevon1999/api-presensi/internal/pkg/waha/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const chatID = "6281234567890@c.us"

func newBotStore(t *testing.T, env config.BotEnvConfig) config.BotConfigStore {
	t.Helper()
	store, err := config.NewBotConfigStore(func() (*config.BotConfig, error) {
		return config.BuildBotConfig(env)
	})
	require.NoError(t, err)
	return store
}

func TestRender(t *testing.T) {
	cfg, err := config.BuildBotConfig(config.BotEnvConfig{SendTimeout: time.Second})
	require.NoError(t, err)

	text := Render(cfg, command.MsgCheckOutSuccess, map[string]string{
		"name":      "Budi Santoso",
		"date":      "10/03/2026",
		"check_in":  "08:00",
		"check_out": "17:00",
		"hours":     "9 jam 0 menit",
	})
	assert.Contains(t, text, "Budi Santoso")
	assert.Contains(t, text, "9 jam 0 menit")
	assert.NotContains(t, text, "{")

	text = Render(cfg, command.MsgCheckInSuccess, map[string]string{"name": "Budi"})
	assert.Contains(t, text, "*Kantor:* -")

	fallback, _ := cfg.Template(command.MsgError)
	assert.Equal(t, fallback, Render(cfg, "no.such.key", nil))
}

func TestResponder_Reply(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mock_waha.NewMockSender(ctrl)
	bot := newBotStore(t, config.BotEnvConfig{
		WAHASession:      "default",
		SendTimeout:      time.Second,
		MarkMessagesRead: true,
		TypingDelay:      10 * time.Millisecond,
	})

	gomock.InOrder(
		sender.EXPECT().SendSeen(gomock.Any(), "default", chatID).Return(nil),
		sender.EXPECT().StartTyping(gomock.Any(), "default", chatID).Return(errors.New("typing unsupported")),
		sender.EXPECT().StopTyping(gomock.Any(), "default", chatID).Return(nil),
		sender.EXPECT().SendText(gomock.Any(), "default", chatID, gomock.Any()).
			DoAndReturn(func(ctx context.Context, session, chatID, text string) error {
				assert.Contains(t, text, "Perintah tidak dikenali")
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return nil
			}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	responder := NewResponder(sender, bot)
	responder.Reply(ctx, "", chatID, command.Result{Outcome: command.OutcomeUnknown, MessageKey: command.MsgUnknown})
	cancel()
	responder.Wait()
}

func TestResponder_SendFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mock_waha.NewMockSender(ctrl)
	bot := newBotStore(t, config.BotEnvConfig{WAHASession: "default", SendTimeout: time.Second})

	sender.EXPECT().SendText(gomock.Any(), "custom", chatID, gomock.Any()).Return(errors.New("gateway down")).Times(2)

	responder := NewResponder(sender, bot)
	responder.ReplyKey(context.Background(), "custom", chatID, command.MsgHelp, nil)
	responder.Wait()

	err := responder.Send(context.Background(), "custom", chatID, "x", false)
	assert.Error(t, err)
}
