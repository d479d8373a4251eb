package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/omarshaarawi/kickoffbot/internal/models"
)

var (
	// ErrFetchFailed means neither the remote feed nor the local fallback was usable.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrLocalParseFailed means the fallback file exists but is not a valid feed document.
	ErrLocalParseFailed = errors.New("local feed parse failed")
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// GetMatches returns the feed's matches, reading the local fallback document
// when the remote request or its decoding fails.
func (a *API) GetMatches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	err := a.client.Get(ctx, a.client.Config.URL, nil, &matches)
	if err == nil {
		return matches, nil
	}

	slog.Warn("Error fetching feed, trying local fallback",
		"url", a.client.Config.URL,
		"path", a.client.Config.FallbackPath,
		"error", err,
	)

	local, localErr := a.readFallback()
	if localErr != nil {
		return nil, errors.Join(fmt.Errorf("%w: %v", ErrFetchFailed, err), localErr)
	}

	slog.Info("Loaded feed from local fallback", "path", a.client.Config.FallbackPath, "matches", len(local))
	return local, nil
}

func (a *API) readFallback() ([]models.Match, error) {
	path := a.client.Config.FallbackPath
	if path == "" {
		return nil, fmt.Errorf("%w: no fallback path configured", ErrFetchFailed)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: fallback file %s not found", ErrFetchFailed, path)
		}
		return nil, fmt.Errorf("%w: reading fallback file: %v", ErrFetchFailed, err)
	}

	var matches []models.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLocalParseFailed, path, err)
	}

	return matches, nil
}
