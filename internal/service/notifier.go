package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/omarshaarawi/kickoffbot/internal/config"
	"github.com/omarshaarawi/kickoffbot/internal/models"
)

var (
	// ErrHistoryWriteFailed means the outcome of a run could not be recorded.
	// When it follows a send, the next run may send again.
	ErrHistoryWriteFailed = errors.New("history write failed")
	// ErrNoMatches is returned by Preview when nothing is scheduled today.
	ErrNoMatches = errors.New("no matches today")
)

type MatchSource interface {
	GetMatches(ctx context.Context) ([]models.Match, error)
}

type Sink interface {
	SendMessage(text string) error
}

type HistoryStore interface {
	Load() (models.History, error)
	Save(history models.History) error
}

type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeSent
	OutcomeAlreadySent
	OutcomeNoMatches
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeAlreadySent:
		return "already_sent"
	case OutcomeNoMatches:
		return "no_matches"
	default:
		return "failed"
	}
}

// Notifier posts the day's schedule at most once per calendar date.
type Notifier struct {
	source   MatchSource
	sink     Sink
	history  HistoryStore
	cfg      config.Message
	location *time.Location
	now      func() time.Time
}

func NewNotifier(source MatchSource, sink Sink, history HistoryStore, cfg config.Message, location *time.Location) *Notifier {
	if location == nil {
		location = time.Local
	}
	return &Notifier{
		source:   source,
		sink:     sink,
		history:  history,
		cfg:      cfg,
		location: location,
		now:      time.Now,
	}
}

// Today returns the current calendar date in the notifier's location.
func (n *Notifier) Today() string {
	return n.now().In(n.location).Format(models.DateLayout)
}

// Run fetches, formats and sends today's schedule unless today already has a
// history entry. Days without matches are recorded without sending.
func (n *Notifier) Run(ctx context.Context) (Outcome, error) {
	now := n.now().In(n.location)
	today := now.Format(models.DateLayout)
	log := slog.With("run_id", uuid.NewString(), "date", today)

	history := n.loadHistory(log)
	if _, ok := history[today]; ok {
		log.Info("Schedule already sent for today")
		return OutcomeAlreadySent, nil
	}

	matches, err := n.source.GetMatches(ctx)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("fetching matches: %w", err)
	}

	for league, allowed := range LeagueNearMisses(matches, today, n.cfg.AllowedLeagues) {
		log.Warn("League not allowed but resembles an allowed league", "league", league, "allowed", allowed)
	}

	todays := FilterMatches(matches, today, n.cfg.AllowedLeagues)
	if len(todays) == 0 {
		log.Info("No matches today for the selected leagues", "feed_matches", len(matches))
		if err := n.record(history, today); err != nil {
			return OutcomeFailed, err
		}
		return OutcomeNoMatches, nil
	}

	groups := GroupByLeague(todays, n.cfg.MatchURLTemplate)
	msg := FormatMessage(now, groups, n.cfg)

	if err := n.sink.SendMessage(msg); err != nil {
		return OutcomeFailed, fmt.Errorf("sending message: %w", err)
	}
	log.Info("Schedule sent", "matches", len(todays), "leagues", len(groups))

	if err := n.record(history, today); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeSent, nil
}

// Preview builds today's message without sending or recording it.
func (n *Notifier) Preview(ctx context.Context) (string, error) {
	now := n.now().In(n.location)
	today := now.Format(models.DateLayout)

	matches, err := n.source.GetMatches(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching matches: %w", err)
	}

	todays := FilterMatches(matches, today, n.cfg.AllowedLeagues)
	if len(todays) == 0 {
		return "", ErrNoMatches
	}

	return FormatMessage(now, GroupByLeague(todays, n.cfg.MatchURLTemplate), n.cfg), nil
}

// Status returns today's history record, if any.
func (n *Notifier) Status() (models.HistoryRecord, bool, error) {
	history, err := n.history.Load()
	if err != nil {
		return models.HistoryRecord{}, false, fmt.Errorf("loading history: %w", err)
	}
	record, ok := history[n.Today()]
	return record, ok, nil
}

func (n *Notifier) loadHistory(log *slog.Logger) models.History {
	history, err := n.history.Load()
	if err != nil {
		log.Warn("Error loading history, treating today as not sent", "error", err)
		return models.History{}
	}
	if history == nil {
		return models.History{}
	}
	return history
}

func (n *Notifier) record(history models.History, date string) error {
	history[date] = models.HistoryRecord{
		Sent:      true,
		Timestamp: n.now().In(n.location).Format(time.RFC3339),
	}
	if err := n.history.Save(history); err != nil {
		return fmt.Errorf("%w: %v", ErrHistoryWriteFailed, err)
	}
	return nil
}
