package service

import (
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/kickoffbot/internal/config"
	"github.com/omarshaarawi/kickoffbot/internal/models"
)

const headerDateLayout = "January 02, 2006"

// FilterMatches keeps the matches kicking off on date in one of the allowed
// leagues. League names must match exactly.
func FilterMatches(matches []models.Match, date string, allowed []string) []models.Match {
	leagues := make(map[string]struct{}, len(allowed))
	for _, league := range allowed {
		leagues[league] = struct{}{}
	}

	var kept []models.Match
	for _, match := range matches {
		if match.KickoffDate != date {
			continue
		}
		if _, ok := leagues[match.League]; !ok {
			continue
		}
		kept = append(kept, match)
	}
	return kept
}

// FormatLine renders a match as a time marker plus a link to its page.
func FormatLine(match models.Match, urlTemplate string) string {
	link := fmt.Sprintf(urlTemplate, url.QueryEscape(match.ID.String()))
	return fmt.Sprintf("🕒 %s | <a href='%s'>%s vs %s</a>",
		html.EscapeString(match.KickoffTime),
		html.EscapeString(link),
		html.EscapeString(match.Team1.Name),
		html.EscapeString(match.Team2.Name),
	)
}

// GroupByLeague renders matches into lines grouped per league, each group
// sorted by kickoff time.
func GroupByLeague(matches []models.Match, urlTemplate string) models.LeagueGroup {
	groups := make(models.LeagueGroup)
	for _, match := range matches {
		groups[match.League] = append(groups[match.League], models.MatchLine{
			KickoffTime: match.KickoffTime,
			Text:        FormatLine(match, urlTemplate),
		})
	}

	for _, lines := range groups {
		sort.Slice(lines, func(i, j int) bool {
			if lines[i].KickoffTime != lines[j].KickoffTime {
				return lines[i].KickoffTime < lines[j].KickoffTime
			}
			return lines[i].Text < lines[j].Text
		})
	}

	return groups
}

// FormatMessage builds the HTML message body for date.
func FormatMessage(date time.Time, groups models.LeagueGroup, cfg config.Message) string {
	var sb strings.Builder

	title := strings.TrimSpace(date.Format(headerDateLayout) + " " + cfg.TimezoneLabel)
	sb.WriteString(fmt.Sprintf("<b>📢 Match Schedule - %s</b>\n", title))

	leagues := make([]string, 0, len(groups))
	for league := range groups {
		leagues = append(leagues, league)
	}
	sort.Strings(leagues)

	for _, league := range leagues {
		sb.WriteString(fmt.Sprintf("\n<b>⚽️ %s</b>\n", html.EscapeString(league)))
		for _, line := range groups[league] {
			sb.WriteString(line.Text)
			sb.WriteString("\n")
		}
	}

	if cfg.Footer != "" {
		sb.WriteString(fmt.Sprintf("\n<b>%s</b>", html.EscapeString(cfg.Footer)))
	}

	return sb.String()
}

// LeagueNearMisses reports leagues of matches on date that are not allowed but
// look like a renamed allowed league, mapped to the allowed name they resemble.
func LeagueNearMisses(matches []models.Match, date string, allowed []string) map[string]string {
	misses := make(map[string]string)
	for _, match := range matches {
		if match.KickoffDate != date {
			continue
		}
		if _, seen := misses[match.League]; seen {
			continue
		}
		if candidate, ok := closestLeague(match.League, allowed); ok {
			misses[match.League] = candidate
		}
	}
	return misses
}

func closestLeague(league string, allowed []string) (string, bool) {
	name := normalizeLeague(league)
	for _, candidate := range allowed {
		if candidate == league {
			return "", false
		}
	}

	for _, candidate := range allowed {
		other := normalizeLeague(candidate)
		if name == other {
			return candidate, true
		}
		if len(name) >= 12 && len(other) >= 12 && fuzzy.LevenshteinDistance(name, other) <= 2 {
			return candidate, true
		}
	}
	return "", false
}

func normalizeLeague(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, name)
}
