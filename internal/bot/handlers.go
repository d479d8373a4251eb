package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/kickoffbot/internal/models"
	"github.com/omarshaarawi/kickoffbot/internal/service"
)

type Reporter interface {
	Today() string
	Preview(ctx context.Context) (string, error)
	Status() (models.HistoryRecord, bool, error)
}

type Handler struct {
	reporter Reporter
}

func NewHandler(reporter Reporter) *Handler {
	return &Handler{reporter: reporter}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	msg.ParseMode = tgbotapi.ModeHTML

	switch command {
	case "start":
		msg.Text = "Welcome to KickoffBot! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/today - Preview today's match schedule\n/status - Check whether today's schedule was posted"
	case "today":
		h.handleToday(ctx, &msg)
	case "status":
		h.handleStatus(&msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleToday(ctx context.Context, msg *tgbotapi.MessageConfig) {
	preview, err := h.reporter.Preview(ctx)
	switch {
	case errors.Is(err, service.ErrNoMatches):
		msg.Text = "No matches today for the selected leagues."
	case err != nil:
		msg.Text = fmt.Sprintf("Error fetching schedule: %s", html.EscapeString(err.Error()))
	default:
		msg.Text = preview
	}
}

func (h *Handler) handleStatus(msg *tgbotapi.MessageConfig) {
	today := h.reporter.Today()
	record, ok, err := h.reporter.Status()
	switch {
	case err != nil:
		msg.Text = fmt.Sprintf("Error reading history: %s", html.EscapeString(err.Error()))
	case ok:
		msg.Text = fmt.Sprintf("✅ Schedule for <b>%s</b> handled at %s", today, record.Timestamp)
	default:
		msg.Text = fmt.Sprintf("⏳ Schedule for <b>%s</b> not posted yet", today)
	}
}
