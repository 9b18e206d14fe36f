package chatbot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Jevon1999/api-presensi/internal/config"
	"github.com/Jevon1999/api-presensi/internal/domain/command"
	"github.com/Jevon1999/api-presensi/internal/pkg/waha"
)

// Responder delivers chat replies off the request goroutine. Delivery
// failures are logged and never reach the caller.
type Responder struct {
	sender waha.Sender
	bot    config.BotConfigStore
	wg     sync.WaitGroup
}

func NewResponder(sender waha.Sender, bot config.BotConfigStore) *Responder {
	return &Responder{sender: sender, bot: bot}
}

// Reply renders result and sends it to chatID in the background. The
// request context only contributes its values, cancellation is detached
// so that the reply outlives the webhook response.
func (r *Responder) Reply(ctx context.Context, session, chatID string, result command.Result) {
	cfg := r.bot.Current()
	text := RenderResult(cfg, result)
	r.Go(ctx, session, chatID, text, cfg.MarkMessagesRead)
}

// ReplyKey sends a template that is not tied to a dispatcher result.
func (r *Responder) ReplyKey(ctx context.Context, session, chatID, key string, data map[string]string) {
	cfg := r.bot.Current()
	r.Go(ctx, session, chatID, Render(cfg, key, data), cfg.MarkMessagesRead)
}

// Go sends text asynchronously.
func (r *Responder) Go(ctx context.Context, session, chatID, text string, markSeen bool) {
	detached := context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.Send(detached, session, chatID, text, markSeen); err != nil {
			slog.Error("failed to deliver chat reply", "chat_id", chatID, "error", err)
		}
	}()
}

// Send delivers text synchronously within the configured send timeout.
// Seen and typing indicators are best effort.
func (r *Responder) Send(ctx context.Context, session, chatID, text string, markSeen bool) error {
	cfg := r.bot.Current()
	if session == "" {
		session = cfg.Session
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.SendTimeout)
	defer cancel()

	if markSeen {
		if err := r.sender.SendSeen(ctx, session, chatID); err != nil {
			slog.Warn("failed to mark chat as seen", "chat_id", chatID, "error", err)
		}
	}

	if cfg.TypingDelay > 0 {
		if err := r.sender.StartTyping(ctx, session, chatID); err != nil {
			slog.Warn("failed to start typing", "chat_id", chatID, "error", err)
		}
		timer := time.NewTimer(cfg.TypingDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
		if err := r.sender.StopTyping(ctx, session, chatID); err != nil {
			slog.Warn("failed to stop typing", "chat_id", chatID, "error", err)
		}
	}

	return r.sender.SendText(ctx, session, chatID, text)
}

// Wait blocks until every pending reply has finished.
func (r *Responder) Wait() {
	r.wg.Wait()
}

// Notify sends a template synchronously. Used for reminders, which have
// no inbound message to mark as seen.
func (r *Responder) Notify(ctx context.Context, chatID, key string, data map[string]string) error {
	return r.Send(ctx, "", chatID, Render(r.bot.Current(), key, data), false)
}
