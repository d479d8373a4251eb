package bot

import (
	"sync"

	"github.com/omarshaarawi/kickoffbot/internal/config"
)

// LazySink connects to Telegram on the first message, so runs that never
// send do not depend on the Bot API being reachable.
type LazySink struct {
	cfg config.TelegramBot

	mu  sync.Mutex
	bot *TelegramBot
}

func NewLazySink(cfg config.TelegramBot) *LazySink {
	return &LazySink{cfg: cfg}
}

func (s *LazySink) SendMessage(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bot == nil {
		bot, err := NewTelegramBot(s.cfg)
		if err != nil {
			return err
		}
		s.bot = bot
	}
	return s.bot.SendMessage(text)
}
