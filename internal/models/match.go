package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MatchID is the feed's match identifier. The feed has shipped it both as a
// JSON string and as a JSON number.
type MatchID string

func (id *MatchID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding match id: %w", err)
		}
		*id = MatchID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding match id: %w", err)
	}
	*id = MatchID(n.String())
	return nil
}

func (id MatchID) String() string {
	return string(id)
}

type Team struct {
	Name string `json:"name"`
}

type Match struct {
	ID          MatchID `json:"id"`
	League      string  `json:"league"`
	KickoffDate string  `json:"kickoff_date"`
	KickoffTime string  `json:"kickoff_time"`
	Team1       Team    `json:"team1"`
	Team2       Team    `json:"team2"`
}

// MatchLine is one rendered schedule line keyed by its kickoff time.
type MatchLine struct {
	KickoffTime string
	Text        string
}

// LeagueGroup maps a league name to the lines of its matches for one date.
type LeagueGroup map[string][]MatchLine
