// Package nbastats talks to the stats.nba.com video endpoints. It translates
// provider filters to the upstream query-string surface and decodes the
// resultSets payload into play records with aligned video metadata.
package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"playdex/searchservice/internal/domain"
)

const (
	defaultBaseURL   = "https://stats.nba.com/stats"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:72.0) Gecko/20100101 Firefox/72.0"

	maxResponseBytes = 8 * 1024 * 1024
)

type Config struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

type Provider struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewProvider(cfg Config) *Provider {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Provider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    client,
	}
}

func (p *Provider) Name() string {
	return "nbastats"
}

// Plays fetches the play list matching the filter. The MISS measure has no
// wire representation; it is sent as FGA and callers narrow to zero-point
// plays afterwards.
func (p *Provider) Plays(ctx context.Context, filter domain.ProviderFilter) ([]domain.Clip, error) {
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("PlayerID", orZero(filter.PlayerID))
	params.Set("TeamID", orZero(filter.TeamID))
	params.Set("OpponentTeamID", orZero(filter.OpponentTeamID))
	params.Set("Season", filter.Season)
	params.Set("SeasonType", string(seasonTypeOrDefault(filter.SeasonType)))
	params.Set("ContextMeasure", wireMeasure(filter.ContextMeasure))
	params.Set("Month", monthOrZero(filter.Month))
	params.Set("Period", "0")
	params.Set("LastNGames", "0")
	if filter.ClutchTime != "" {
		params.Set("ClutchTime", filter.ClutchTime)
	}
	if filter.DateFrom != nil {
		params.Set("DateFrom", filter.DateFrom.Format("01/02/2006"))
	}
	if filter.DateTo != nil {
		params.Set("DateTo", filter.DateTo.Format("01/02/2006"))
	}

	var payload videoDetailsResponse
	if err := p.get(ctx, "/videodetailsasset", params, &payload); err != nil {
		return nil, err
	}

	return payload.clips(), nil
}

// VideoMeta fetches metadata for a single event, used when a play from the
// cache lacks its clip enrichment.
func (p *Provider) VideoMeta(ctx context.Context, gameID string, eventID int) (*domain.VideoMetadata, error) {
	params := url.Values{}
	params.Set("GameID", gameID)
	params.Set("GameEventID", strconv.Itoa(eventID))

	var payload videoDetailsResponse
	if err := p.get(ctx, "/videoeventsasset", params, &payload); err != nil {
		return nil, err
	}

	clips := payload.clips()
	if len(clips) == 0 || clips[0].Video == nil {
		return nil, nil
	}
	return clips[0].Video, nil
}

func (p *Provider) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := p.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://stats.nba.com/")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: HTTP %d", domain.ErrUpstreamThrottled, resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: HTTP %d", domain.ErrUpstream, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("nbastats HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return nil
}

// wireMeasure maps the domain measure to the values the endpoint accepts.
func wireMeasure(measure domain.ContextMeasure) string {
	switch measure {
	case "":
		return string(domain.MeasurePoints)
	case domain.MeasureMisses:
		return string(domain.MeasureAttempts)
	default:
		return string(measure)
	}
}

func seasonTypeOrDefault(st domain.SeasonType) domain.SeasonType {
	if st == "" {
		return domain.SeasonTypeRegular
	}
	return st
}

func orZero(id string) string {
	if strings.TrimSpace(id) == "" {
		return "0"
	}
	return id
}

func monthOrZero(month string) string {
	if month == "" {
		return "0"
	}
	return strings.TrimPrefix(month, "0")
}

// videoDetailsResponse is the shared shape of videodetailsasset and
// videoeventsasset: a playlist of plays and an index-aligned videoUrls list.
type videoDetailsResponse struct {
	ResultSets struct {
		Meta struct {
			VideoURLs []videoURLEntry `json:"videoUrls"`
		} `json:"Meta"`
		Playlist []playlistEntry `json:"playlist"`
	} `json:"resultSets"`
}

type videoURLEntry struct {
	UUID string `json:"uuid"`
	SURL string `json:"surl"`
	STH  string `json:"sth"`
	MURL string `json:"murl"`
	MTH  string `json:"mth"`
	LURL string `json:"lurl"`
	LTH  string `json:"lth"`
}

type playlistEntry struct {
	GameID        string `json:"gi"`
	EventID       int    `json:"ei"`
	Year          int    `json:"y"`
	Month         int    `json:"m"`
	Day           int    `json:"d"`
	Period        int    `json:"p"`
	Clock         string `json:"cl"`
	Description   string `json:"dsc"`
	HomeAbbrev    string `json:"ha"`
	HomeTeamID    int    `json:"hid"`
	VisitorAbbrev string `json:"va"`
	VisitorTeamID int    `json:"vid"`
	HomeBefore    int    `json:"hpb"`
	HomeAfter     int    `json:"hpa"`
	VisitorBefore int    `json:"vpb"`
	VisitorAfter  int    `json:"vpa"`
}

func (r videoDetailsResponse) clips() []domain.Clip {
	playlist := r.ResultSets.Playlist
	videos := r.ResultSets.Meta.VideoURLs

	out := make([]domain.Clip, 0, len(playlist))
	for i, entry := range playlist {
		clip := domain.Clip{Play: entry.playRecord()}
		if i < len(videos) {
			if meta := videos[i].metadata(); meta != nil {
				clip.Video = meta
			}
		}
		out = append(out, clip)
	}
	return out
}

func (e playlistEntry) playRecord() domain.PlayRecord {
	record := domain.PlayRecord{
		GameID:              e.GameID,
		EventID:             e.EventID,
		Description:         e.Description,
		HomeTeam:            e.HomeAbbrev,
		VisitorTeam:         e.VisitorAbbrev,
		Period:              e.Period,
		TimeRemaining:       e.Clock,
		HomePointsBefore:    e.HomeBefore,
		HomePointsAfter:     e.HomeAfter,
		VisitorPointsBefore: e.VisitorBefore,
		VisitorPointsAfter:  e.VisitorAfter,
	}
	if e.Year > 0 && e.Month >= 1 && e.Month <= 12 && e.Day >= 1 {
		record.Date = time.Date(e.Year, time.Month(e.Month), e.Day, 0, 0, 0, 0, time.UTC)
	}
	return record
}

func (v videoURLEntry) metadata() *domain.VideoMetadata {
	videoURL := v.LURL
	if videoURL == "" {
		videoURL = v.MURL
	}
	if videoURL == "" {
		videoURL = v.SURL
	}
	if videoURL == "" && v.UUID == "" {
		return nil
	}
	return &domain.VideoMetadata{
		UUID:            v.UUID,
		VideoURL:        videoURL,
		ThumbnailSmall:  v.STH,
		ThumbnailMedium: v.MTH,
		ThumbnailLarge:  v.LTH,
	}
}
