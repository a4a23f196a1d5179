package telegram

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ChatLimiter allows perMinute questions per chat with a burst of the same size.
type ChatLimiter struct {
	perMinute int
	m         sync.Map // chatID -> *rate.Limiter
}

// NewChatLimiter returns nil when perMinute <= 0, which disables limiting.
func NewChatLimiter(perMinute int) *ChatLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &ChatLimiter{perMinute: perMinute}
}

func (c *ChatLimiter) Allow(chatID int64) bool {
	if c == nil {
		return true
	}
	v, ok := c.m.Load(chatID)
	if !ok {
		lim := rate.NewLimiter(rate.Every(time.Minute/time.Duration(c.perMinute)), c.perMinute)
		v, _ = c.m.LoadOrStore(chatID, lim)
	}
	return v.(*rate.Limiter).Allow()
}
