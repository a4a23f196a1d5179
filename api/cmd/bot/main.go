package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"tutor-bot/api/internal/bootstrap"
	"tutor-bot/api/internal/config"
	"tutor-bot/api/internal/constants"
	"tutor-bot/api/internal/handle"
	"tutor-bot/api/internal/httpserver"
	"tutor-bot/api/internal/llm"
	"tutor-bot/api/internal/logging"
	"tutor-bot/api/internal/runner"
	"tutor-bot/api/internal/telegram"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		logrus.Fatal(err)
	}
	logging.Setup(cfg.LogLevel, os.Stdout)

	if p := strings.TrimSpace(os.Getenv("PORT")); p == "" {
		cfg.Port = "8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ql, closeDB, err := bootstrap.QueryLog(ctx, cfg)
	if err != nil {
		logrus.Fatalf("query journal: %v", err)
	}
	defer closeDB()
	var journal runner.Journal
	if ql != nil {
		journal = ql
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logrus.Fatal(err)
	}
	bot.Debug = false

	engines := bootstrap.Engines(cfg)
	def, err := engines.GetEngine("")
	if err != nil {
		logrus.Fatal(err)
	}

	r := &telegram.Router{
		Bot:        bot,
		EngManager: llm.NewManager(def),
		Engines:    engines,
		Runner:     runner.New(constants.Default, journal),
		Timeout:    cfg.RequestTimeout,
		Limits:     telegram.NewChatLimiter(cfg.ChatRateLimit),
	}

	// ListenForWebhook регистрирует обработчик на DefaultServeMux
	mux := http.DefaultServeMux
	h := handle.New(engines, r.Runner, cfg.RequestTimeout)
	mux.HandleFunc("/healthz", h.Healthz)

	addr := "0.0.0.0:" + cfg.Port
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		startWebhookMode(ctx, addr, bot, r, webhookURL)
	} else {
		startPollingMode(ctx, addr, bot, r)
	}
}

// ---------------- Modes -----------------

func startWebhookMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		logrus.Fatal(err)
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		logrus.Fatal(err)
	}

	updates := bot.ListenForWebhook(path)
	go func() {
		for upd := range updates {
			go r.HandleUpdate(upd)
		}
		logrus.Info("webhook updates channel closed")
	}()

	logrus.Infof("webhook listening on %s%s", addr, path)
	if err := httpserver.Run(ctx, addr, handle.WithRequestLog(http.DefaultServeMux)); err != nil {
		logrus.Fatal(err)
	}
}

func startPollingMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router) {
	go func() {
		if err := httpserver.Run(ctx, addr, handle.WithRequestLog(http.DefaultServeMux)); err != nil {
			logrus.Fatal(err)
		}
	}()

	runPolling(ctx, bot, func(upd tgbotapi.Update) {
		go r.HandleUpdate(upd)
	})
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, handle func(tgbotapi.Update)) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			logrus.Info("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := min(max(retryDelayFromError(err), baseDelay), maxDelay)
			logrus.Warnf("polling error: %v; retry in %v", err, d)
			time.Sleep(d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

// ---------------- Helpers -----------------

// shortHash is FNV-1a of s as 16 hex chars; keeps the webhook path unguessable
// without exposing the token.
func shortHash(s string) string {
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
