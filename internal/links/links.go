// Package links synthesizes watch destinations for resolved plays. Link
// building is pure string work over official URL shapes; the service never
// proxies or stores video itself.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"playdex/searchservice/internal/domain"
)

const (
	statsEventsBase = "https://www.nba.com/stats/events/"
	gamePageBase    = "https://www.nba.com/game/"
	youtubeBase     = "https://www.youtube.com/results"
)

// Synthesize builds the full link set for one play. The direct video link is
// present only when the provider returned playable metadata.
func Synthesize(play domain.PlayRecord, season string, meta *domain.VideoMetadata) domain.WatchLinks {
	out := domain.WatchLinks{
		StatsPage:     StatsPage(play, season),
		GamePage:      GamePage(play.GameID),
		YoutubeSearch: YoutubeSearch(play),
	}
	if meta != nil && meta.VideoURL != "" {
		out.Video = meta.VideoURL
	}
	return out
}

// StatsPage links the play's event on the official stats site, which hosts
// the clip player for individual events.
func StatsPage(play domain.PlayRecord, season string) string {
	params := url.Values{}
	params.Set("flag", "1")
	params.Set("GameID", play.GameID)
	params.Set("GameEventID", fmt.Sprintf("%d", play.EventID))
	if season != "" {
		params.Set("Season", season)
	}
	params.Set("sct", "plot")
	return statsEventsBase + "?" + params.Encode()
}

// GamePage links the game's summary page.
func GamePage(gameID string) string {
	return gamePageBase + url.PathEscape(gameID)
}

// YoutubeSearch builds a search query from the play description plus enough
// game context to land on highlight uploads.
func YoutubeSearch(play domain.PlayRecord) string {
	terms := make([]string, 0, 4)
	if play.Description != "" {
		terms = append(terms, play.Description)
	}
	if play.VisitorTeam != "" && play.HomeTeam != "" {
		terms = append(terms, play.VisitorTeam+" vs "+play.HomeTeam)
	}
	if !play.Date.IsZero() {
		terms = append(terms, play.Date.Format("January 2 2006"))
	}
	if len(terms) == 0 {
		terms = append(terms, "nba highlights")
	}

	params := url.Values{}
	params.Set("search_query", strings.Join(terms, " "))
	return youtubeBase + "?" + params.Encode()
}

// Thumbnail picks the best available thumbnail, preferring the medium size
// used by result cards.
func Thumbnail(meta *domain.VideoMetadata) string {
	if meta == nil {
		return ""
	}
	for _, candidate := range []string{meta.ThumbnailMedium, meta.ThumbnailLarge, meta.ThumbnailSmall} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
