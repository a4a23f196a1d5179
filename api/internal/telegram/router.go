package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tutor-bot/api/internal/llm"
	"tutor-bot/api/internal/logging"
	"tutor-bot/api/internal/runner"
)

// Sender is the part of *tgbotapi.BotAPI the router uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Router struct {
	Bot        Sender
	EngManager *llm.Manager
	Engines    *llm.Engines
	Runner     *runner.Runner
	Timeout    time.Duration
	Limits     *ChatLimiter
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}
	text := upd.Message.Text
	if strings.TrimSpace(text) == "" {
		// фото, стикеры и пр. не поддерживаем
		return
	}
	r.answer(upd.Message.Chat.ID, text)
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, helpText)
	case "health":
		r.send(cid, "✅ OK")
	case "engine":
		r.handleEngineCommand(cid, upd.Message.CommandArguments())
	case "constants":
		r.send(cid, formatConstantTable(r.Runner.Table))
	default:
		r.send(cid, "Unknown command. Try /help")
	}
}

// handleEngineCommand:
//
//	/engine
//	/engine gemini
//	/engine gpt
func (r *Router) handleEngineCommand(chatID int64, args string) {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		cur := r.EngManager.Get(chatID)
		r.send(chatID, fmt.Sprintf("Current engine: %s (%s)\nUsage: /engine gemini | /engine gpt", cur.Name(), cur.GetModel()))
		return
	}
	eng, err := r.Engines.GetEngine(name)
	if err != nil {
		r.send(chatID, "❌ "+err.Error())
		return
	}
	r.EngManager.Set(chatID, eng)
	r.send(chatID, fmt.Sprintf("✅ Engine: %s (%s)", eng.Name(), eng.GetModel()))
}

func (r *Router) answer(chatID int64, text string) {
	if r.Limits != nil && !r.Limits.Allow(chatID) {
		r.send(chatID, "⏳ Too many questions at once. Please wait a minute and try again.")
		return
	}

	ctx := logging.WithRequestID(context.Background(), "")
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 70 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, _ = r.Bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	res, err := r.Runner.Ask(ctx, runner.SourceTelegram, r.EngManager.Get(chatID), text)
	if err != nil {
		r.SendError(chatID, err)
		return
	}
	r.send(chatID, formatResult(res))
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, truncate(text))
	_, _ = r.Bot.Send(msg)
}

func (r *Router) SendError(chatID int64, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		r.send(chatID, "⚠️ The tutor took too long to answer. Please try again.")
		return
	}
	r.send(chatID, fmt.Sprintf("⚠️ Error: %v", err))
}
