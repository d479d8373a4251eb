package models

// DateLayout is the calendar date form used by the feed and the history keys.
const DateLayout = "2006-01-02"

type HistoryRecord struct {
	Sent      bool   `json:"sent"`
	Timestamp string `json:"timestamp"`
}

// History maps a calendar date to the outcome recorded for it.
type History map[string]HistoryRecord
