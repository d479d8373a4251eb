package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// ErrConfigMissing is returned when a required setting is absent or invalid.
var ErrConfigMissing = errors.New("configuration missing")

const (
	HistoryBackendJSON = "json"
	HistoryBackendBolt = "bolt"
)

type Config struct {
	TelegramBot TelegramBot
	Feed        Feed
	Message     Message
	History     History
	Scheduler   Scheduler
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
}

type TelegramBot struct {
	Token       string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID      int64  `envconfig:"CHAT_ID" required:"true"`
	APIEndpoint string `envconfig:"TELEGRAM_API_ENDPOINT" default:"https://api.telegram.org/bot%s/%s"`
}

type Feed struct {
	URL          string        `envconfig:"FEED_URL" default:"https://weekendsch.pages.dev/sch/schedule.json"`
	FallbackPath string        `envconfig:"FEED_FALLBACK_PATH" default:"schedule.json"`
	UserAgent    string        `envconfig:"FEED_USER_AGENT" default:"Mozilla/5.0"`
	Timeout      time.Duration `envconfig:"FEED_TIMEOUT" default:"10s"`
}

type Message struct {
	AllowedLeagues   []string `envconfig:"ALLOWED_LEAGUES" default:"Premier League,LaLiga,Serie A,Champions League,ENGLAND: EFL Cup,Bundesliga,Europa League"`
	MatchURLTemplate string   `envconfig:"MATCH_URL_TEMPLATE" default:"https://gvt720.blogspot.com/?match=%s"`
	TimezoneLabel    string   `envconfig:"TIMEZONE_LABEL" default:"UTC+7"`
	Footer           string   `envconfig:"FOOTER" default:"govoettv.blogspot.com"`
}

type History struct {
	Backend string `envconfig:"HISTORY_BACKEND" default:"json"`
	Path    string `envconfig:"HISTORY_PATH" default:"history.json"`
}

type Scheduler struct {
	Cron       string `envconfig:"SCHEDULE_CRON" default:"0 7 * * *"`
	Timezone   string `envconfig:"SCHEDULE_TZ" default:"Local"`
	RunOnStart bool   `envconfig:"RUN_ON_START" default:"false"`
}

func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigMissing, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings that envconfig cannot express as tags.
func (c *Config) Validate() error {
	if c.TelegramBot.Token == "" {
		return fmt.Errorf("%w: TELEGRAM_TOKEN is empty", ErrConfigMissing)
	}
	if c.TelegramBot.ChatID == 0 {
		return fmt.Errorf("%w: CHAT_ID is empty", ErrConfigMissing)
	}
	if c.Feed.URL == "" {
		return fmt.Errorf("%w: FEED_URL is empty", ErrConfigMissing)
	}
	if len(c.Message.AllowedLeagues) == 0 {
		return fmt.Errorf("%w: ALLOWED_LEAGUES is empty", ErrConfigMissing)
	}

	switch c.History.Backend {
	case HistoryBackendJSON, HistoryBackendBolt:
	default:
		return fmt.Errorf("%w: unknown HISTORY_BACKEND %q", ErrConfigMissing, c.History.Backend)
	}

	if _, err := cron.ParseStandard(c.Scheduler.Cron); err != nil {
		return fmt.Errorf("%w: invalid SCHEDULE_CRON %q: %v", ErrConfigMissing, c.Scheduler.Cron, err)
	}
	if _, err := c.Scheduler.Location(); err != nil {
		return fmt.Errorf("%w: invalid SCHEDULE_TZ %q: %v", ErrConfigMissing, c.Scheduler.Timezone, err)
	}

	return nil
}

// Location resolves the timezone used for the daily trigger and for "today".
func (s Scheduler) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}
