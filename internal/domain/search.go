package domain

import "time"

// ContextMeasure is the provider's event-type vocabulary. Action words in a
// query canonicalize to exactly one of these.
type ContextMeasure string

const (
	MeasurePoints    ContextMeasure = "PTS"
	MeasureBlocks    ContextMeasure = "BLK"
	MeasureSteals    ContextMeasure = "STL"
	MeasureAssists   ContextMeasure = "AST"
	MeasureRebounds  ContextMeasure = "REB"
	MeasureTurnovers ContextMeasure = "TOV"
	MeasureMisses    ContextMeasure = "MISS"
	MeasureAttempts  ContextMeasure = "FGA"
)

type SeasonType string

const (
	SeasonTypeRegular  SeasonType = "Regular Season"
	SeasonTypePlayoffs SeasonType = "Playoffs"
	SeasonTypePre      SeasonType = "Pre Season"
	SeasonTypeAllStar  SeasonType = "All Star"
)

// ScoreSpecifier marks plays by their effect on the score, filtered
// client-side because the provider has no matching parameter.
type ScoreSpecifier string

const (
	ScoreGameTying    ScoreSpecifier = "GT"
	ScoreLeadTaking   ScoreSpecifier = "LT"
	ScoreBuzzerBeater ScoreSpecifier = "BB"
	ScoreGameWinner   ScoreSpecifier = "GW"
)

type SortOrder string

const (
	SortRecency       SortOrder = "recency"
	SortChronological SortOrder = "chronological"
)

// Query is the raw user input plus its normalized form. Immutable once built.
type Query struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
}

// EntityMatch is one resolved lexicon entity with its match confidence.
type EntityMatch struct {
	Name       string  `json:"name"`
	ID         string  `json:"id"`
	Confidence float64 `json:"confidence"`
}

// TimeRange is a resolved time expression. Either a season code, an absolute
// date range, or both (relative phrases anchor to the server clock).
type TimeRange struct {
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	SeasonCode string     `json:"seasonCode,omitempty"`
}

// ExtractedEntities is the extractor's output. Player is either a single
// high-confidence resolution or nil; runner-up candidates live in Alternates.
type ExtractedEntities struct {
	Player         *EntityMatch   `json:"player,omitempty"`
	Team           *EntityMatch   `json:"team,omitempty"`
	OpponentTeam   *EntityMatch   `json:"opponentTeam,omitempty"`
	Action         ContextMeasure `json:"action,omitempty"`
	ActionDetail   []string       `json:"actionDetail,omitempty"`
	ScoreSpecifier ScoreSpecifier `json:"scoreSpecifier,omitempty"`
	ClutchTime     string         `json:"clutchTime,omitempty"`
	SeasonType     SeasonType     `json:"seasonType,omitempty"`
	Month          string         `json:"month,omitempty"`
	TimeRange      *TimeRange     `json:"timeRange,omitempty"`
	SortOrder      SortOrder      `json:"sortOrder,omitempty"`
	Sport          string         `json:"sport"`
	Ambiguous      bool           `json:"ambiguous,omitempty"`
	Alternates     []EntityMatch  `json:"alternates,omitempty"`
	Leftover       []string       `json:"-"`
}

// ProviderFilter is the planner's output in the provider's own vocabulary.
type ProviderFilter struct {
	PlayerID       string         `json:"playerId,omitempty"`
	TeamID         string         `json:"teamId,omitempty"`
	OpponentTeamID string         `json:"opponentTeamId,omitempty"`
	Season         string         `json:"season,omitempty"`
	SeasonType     SeasonType     `json:"seasonType,omitempty"`
	ContextMeasure ContextMeasure `json:"contextMeasure,omitempty"`
	Month          string         `json:"month,omitempty"`
	ClutchTime     string         `json:"clutchTime,omitempty"`
	ShotSpecifiers []string       `json:"shotSpecifiers,omitempty"`
	ScoreSpecifier ScoreSpecifier `json:"scoreSpecifier,omitempty"`
	DateFrom       *time.Time     `json:"dateFrom,omitempty"`
	DateTo         *time.Time     `json:"dateTo,omitempty"`
	FreeText       string         `json:"freeText,omitempty"`
	SortOrder      SortOrder      `json:"sortOrder,omitempty"`
	LowConfidence  bool           `json:"lowConfidence,omitempty"`
}

// PlayKey is the identity of a play. Two records with the same key are the
// same play regardless of which fetch produced them.
type PlayKey struct {
	GameID  string `json:"gameId"`
	EventID int    `json:"eventId"`
}

// PlayRecord is one play-by-play event as resolved from the provider.
// Value object; identity is PlayKey.
type PlayRecord struct {
	GameID        string    `json:"gameId"`
	EventID       int       `json:"eventId"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	HomeTeam      string    `json:"homeTeam"`
	VisitorTeam   string    `json:"visitorTeam"`
	Period        int       `json:"period"`
	TimeRemaining string    `json:"timeRemaining"`
	PlayerID      string    `json:"playerId,omitempty"`
	PlayerName    string    `json:"playerName,omitempty"`
	ActionType    string    `json:"actionType,omitempty"`

	HomePointsBefore    int `json:"homePointsBefore,omitempty"`
	HomePointsAfter     int `json:"homePointsAfter,omitempty"`
	VisitorPointsBefore int `json:"visitorPointsBefore,omitempty"`
	VisitorPointsAfter  int `json:"visitorPointsAfter,omitempty"`
}

func (p PlayRecord) Key() PlayKey {
	return PlayKey{GameID: p.GameID, EventID: p.EventID}
}

// PointChange is the total score movement this play produced.
func (p PlayRecord) PointChange() int {
	return (p.HomePointsAfter - p.HomePointsBefore) + (p.VisitorPointsAfter - p.VisitorPointsBefore)
}

// MarginBefore is the absolute score gap before the play.
func (p PlayRecord) MarginBefore() int {
	diff := p.HomePointsBefore - p.VisitorPointsBefore
	if diff < 0 {
		return -diff
	}
	return diff
}

// VideoMetadata is the per-event enrichment from the provider's video call.
type VideoMetadata struct {
	UUID            string `json:"uuid,omitempty"`
	VideoURL        string `json:"videoUrl,omitempty"`
	ThumbnailSmall  string `json:"thumbnailSmall,omitempty"`
	ThumbnailMedium string `json:"thumbnailMedium,omitempty"`
	ThumbnailLarge  string `json:"thumbnailLarge,omitempty"`
	Description     string `json:"description,omitempty"`
}

// Clip pairs a play with its video enrichment. The provider returns plays
// and video metadata index-aligned; Video stays nil when the play has no
// clip coverage.
type Clip struct {
	Play  PlayRecord     `json:"play"`
	Video *VideoMetadata `json:"video,omitempty"`
}

// WatchLinks point at official destinations; the service never serves video
// bytes itself.
type WatchLinks struct {
	StatsPage     string `json:"statsPage"`
	GamePage      string `json:"gamePage"`
	Video         string `json:"video,omitempty"`
	YoutubeSearch string `json:"youtubeSearch"`
}

// SearchResult is a PlayRecord merged with link-synthesizer output.
type SearchResult struct {
	Play         PlayRecord `json:"play"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	WatchLinks   WatchLinks `json:"watchLinks"`
	Description  string     `json:"description"`
	MatchScore   float64    `json:"matchScore"`
}

// AISummary is the hedged natural-language framing of a result page.
type AISummary struct {
	Summary     string   `json:"summary"`
	ResultCount int      `json:"resultCount"`
	Insights    []string `json:"insights"`
}

type SearchRequest struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type SearchResponse struct {
	ThreadID  string            `json:"threadId"`
	Results   []SearchResult    `json:"results"`
	Entities  ExtractedEntities `json:"extracted_entities"`
	AISummary AISummary         `json:"ai_summary"`
	HasMore   bool              `json:"hasMore"`
	Offset    int               `json:"offset"`
	Limit     int               `json:"limit"`
	ElapsedMS int64             `json:"elapsedMs"`
	Degraded  bool              `json:"degraded,omitempty"`
}

// ThreadStatus is the search thread lifecycle. Complete and Error are
// terminal; a new query starts a new thread.
type ThreadStatus string

const (
	ThreadIdle     ThreadStatus = "idle"
	ThreadFetching ThreadStatus = "fetching"
	ThreadPartial  ThreadStatus = "partial"
	ThreadComplete ThreadStatus = "complete"
	ThreadError    ThreadStatus = "error"
)
