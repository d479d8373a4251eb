package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"github.com/omarshaarawi/kickoffbot/internal/models"
	"github.com/omarshaarawi/kickoffbot/internal/service"
)

type fakeReporter struct {
	preview    string
	previewErr error
	record     models.HistoryRecord
	recorded   bool
	statusErr  error
}

func (f *fakeReporter) Today() string { return "2025-02-03" }

func (f *fakeReporter) Preview(ctx context.Context) (string, error) {
	return f.preview, f.previewErr
}

func (f *fakeReporter) Status() (models.HistoryRecord, bool, error) {
	return f.record, f.recorded, f.statusErr
}

func commandUpdate(text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: 99},
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: length},
			},
		},
	}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		reporter *fakeReporter
		want     string
	}{
		{
			name:     "start",
			command:  "/start",
			reporter: &fakeReporter{},
			want:     "Welcome to KickoffBot! Use /help to see available commands.",
		},
		{
			name:     "today preview",
			command:  "/today",
			reporter: &fakeReporter{preview: "<b>schedule</b>"},
			want:     "<b>schedule</b>",
		},
		{
			name:     "today without matches",
			command:  "/Today",
			reporter: &fakeReporter{previewErr: service.ErrNoMatches},
			want:     "No matches today for the selected leagues.",
		},
		{
			name:     "today fetch error",
			command:  "/today",
			reporter: &fakeReporter{previewErr: errors.New("feed <down>")},
			want:     "Error fetching schedule: feed &lt;down&gt;",
		},
		{
			name:     "status recorded",
			command:  "/status",
			reporter: &fakeReporter{recorded: true, record: models.HistoryRecord{Sent: true, Timestamp: "2025-02-03T07:00:00+07:00"}},
			want:     "✅ Schedule for <b>2025-02-03</b> handled at 2025-02-03T07:00:00+07:00",
		},
		{
			name:     "status pending",
			command:  "/status",
			reporter: &fakeReporter{},
			want:     "⏳ Schedule for <b>2025-02-03</b> not posted yet",
		},
		{
			name:     "status error",
			command:  "/status",
			reporter: &fakeReporter{statusErr: errors.New("disk")},
			want:     "Error reading history: disk",
		},
		{
			name:     "unknown",
			command:  "/scores now",
			reporter: &fakeReporter{},
			want:     "Unknown command. Use /help to see available commands.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewHandler(tt.reporter).HandleCommand(context.Background(), commandUpdate(tt.command))
			assert.Equal(t, int64(99), msg.ChatID)
			assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
			assert.Equal(t, tt.want, msg.Text)
		})
	}
}
