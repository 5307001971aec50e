package search

import (
	"testing"
	"time"

	"playdex/searchservice/internal/domain"
)

func clip(gameID string, eventID int, opts ...func(*domain.PlayRecord)) domain.Clip {
	play := domain.PlayRecord{
		GameID:      gameID,
		EventID:     eventID,
		Description: "James Driving Dunk (12 PTS)",
		Date:        time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		Period:      2,
	}
	for _, opt := range opts {
		opt(&play)
	}
	return domain.Clip{Play: play}
}

func TestApplyPostFiltersShotSpecifiers(t *testing.T) {
	clips := []domain.Clip{
		clip("001", 1, func(p *domain.PlayRecord) { p.Description = "Curry 26' 3PT Step Back Jump Shot" }),
		clip("001", 2, func(p *domain.PlayRecord) { p.Description = "Curry Driving Layup" }),
		clip("001", 3, func(p *domain.PlayRecord) { p.Description = "Curry 27' Three Point Jumper" }),
	}

	got := applyPostFilters(clips, domain.ProviderFilter{ShotSpecifiers: []string{"3PT"}})
	if len(got) != 2 {
		t.Fatalf("3PT filter kept %d clips, want 2", len(got))
	}

	got = applyPostFilters(clips, domain.ProviderFilter{ShotSpecifiers: []string{"Step Back"}})
	if len(got) != 1 || got[0].Play.EventID != 1 {
		t.Fatalf("Step Back filter = %+v", got)
	}
}

func TestApplyPostFiltersMisses(t *testing.T) {
	clips := []domain.Clip{
		clip("001", 1, func(p *domain.PlayRecord) {
			p.Description = "MISS James 15' Jump Shot"
			p.HomePointsBefore, p.HomePointsAfter = 50, 50
			p.VisitorPointsBefore, p.VisitorPointsAfter = 48, 48
		}),
		clip("001", 2, func(p *domain.PlayRecord) {
			p.HomePointsBefore, p.HomePointsAfter = 50, 52
			p.VisitorPointsBefore, p.VisitorPointsAfter = 48, 48
		}),
	}

	got := applyPostFilters(clips, domain.ProviderFilter{ContextMeasure: domain.MeasureMisses})
	if len(got) != 1 || got[0].Play.EventID != 1 {
		t.Fatalf("miss filter = %+v, want only the zero-point play", got)
	}
}

func TestApplyPostFiltersClutchMargin(t *testing.T) {
	clips := []domain.Clip{
		clip("001", 1, func(p *domain.PlayRecord) {
			p.HomePointsBefore, p.VisitorPointsBefore = 100, 97
		}),
		clip("001", 2, func(p *domain.PlayRecord) {
			p.HomePointsBefore, p.VisitorPointsBefore = 100, 80
		}),
	}

	got := applyPostFilters(clips, domain.ProviderFilter{ClutchTime: "Last 5 Minutes"})
	if len(got) != 1 || got[0].Play.EventID != 1 {
		t.Fatalf("clutch filter = %+v, want only the close game", got)
	}
}

func TestFilterByScore(t *testing.T) {
	gameTying := clip("001", 1, func(p *domain.PlayRecord) {
		p.HomePointsBefore, p.HomePointsAfter = 98, 100
		p.VisitorPointsBefore, p.VisitorPointsAfter = 100, 100
	})
	leadTaking := clip("001", 2, func(p *domain.PlayRecord) {
		p.HomePointsBefore, p.HomePointsAfter = 99, 102
		p.VisitorPointsBefore, p.VisitorPointsAfter = 100, 100
	})
	buzzer := clip("001", 3, func(p *domain.PlayRecord) {
		p.TimeRemaining = "0:00.8"
		p.Period = 2
		p.HomePointsBefore, p.HomePointsAfter = 50, 53
		p.VisitorPointsBefore, p.VisitorPointsAfter = 40, 40
	})
	gameWinner := clip("001", 4, func(p *domain.PlayRecord) {
		p.TimeRemaining = "0:00.4"
		p.Period = 4
		p.HomePointsBefore, p.HomePointsAfter = 100, 102
		p.VisitorPointsBefore, p.VisitorPointsAfter = 101, 101
	})
	ordinary := clip("001", 5)
	all := []domain.Clip{gameTying, leadTaking, buzzer, gameWinner, ordinary}

	tests := []struct {
		spec domain.ScoreSpecifier
		want []int
	}{
		{domain.ScoreGameTying, []int{1}},
		{domain.ScoreLeadTaking, []int{2, 4}},
		{domain.ScoreBuzzerBeater, []int{3, 4}},
		{domain.ScoreGameWinner, []int{4}},
	}

	for _, tt := range tests {
		got := filterByScore(all, tt.spec)
		ids := make([]int, 0, len(got))
		for _, c := range got {
			ids = append(ids, c.Play.EventID)
		}
		if len(ids) != len(tt.want) {
			t.Errorf("filterByScore(%s) kept %v, want %v", tt.spec, ids, tt.want)
			continue
		}
		for i := range ids {
			if ids[i] != tt.want[i] {
				t.Errorf("filterByScore(%s) kept %v, want %v", tt.spec, ids, tt.want)
				break
			}
		}
	}
}

func TestClockSeconds(t *testing.T) {
	tests := []struct {
		clock string
		want  float64
	}{
		{"2:45", 165},
		{"0:00.4", 0.4},
		{"0:01", 1},
		{"", 1 << 20},
		{"bogus", 1 << 20},
	}
	for _, tt := range tests {
		if got := clockSeconds(tt.clock); got != tt.want {
			t.Errorf("clockSeconds(%q) = %v, want %v", tt.clock, got, tt.want)
		}
	}
}

func TestRankClipsRecencyDefault(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	older := clip("001", 1, func(p *domain.PlayRecord) {
		p.Date = time.Date(2015, time.March, 1, 0, 0, 0, 0, time.UTC)
	})
	newer := clip("002", 2, func(p *domain.PlayRecord) {
		p.Date = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	})

	ranked := rankClips([]domain.Clip{older, newer}, domain.ProviderFilter{}, nil, now)
	if ranked[0].clip.Play.EventID != 2 {
		t.Errorf("recency ranking put event %d first, want the newer play", ranked[0].clip.Play.EventID)
	}

	chrono := rankClips([]domain.Clip{newer, older}, domain.ProviderFilter{SortOrder: domain.SortChronological}, nil, now)
	if chrono[0].clip.Play.EventID != 1 {
		t.Errorf("chronological ranking put event %d first, want the older play", chrono[0].clip.Play.EventID)
	}
}

func TestRankClipsDeterministicTies(t *testing.T) {
	now := time.Now()
	date := time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC)
	a := clip("0022300100", 5, func(p *domain.PlayRecord) { p.Date = date })
	b := clip("0022300100", 2, func(p *domain.PlayRecord) { p.Date = date })

	first := rankClips([]domain.Clip{a, b}, domain.ProviderFilter{}, nil, now)
	second := rankClips([]domain.Clip{b, a}, domain.ProviderFilter{}, nil, now)
	if first[0].clip.Play.EventID != second[0].clip.Play.EventID {
		t.Error("tie-broken order must not depend on input order")
	}
	if first[0].clip.Play.EventID != 2 {
		t.Errorf("ties break by event order, got event %d first", first[0].clip.Play.EventID)
	}
}

func TestRankClipsVideoBonus(t *testing.T) {
	now := time.Now()
	date := now.AddDate(0, -1, 0)
	plain := clip("001", 1, func(p *domain.PlayRecord) { p.Date = date })
	withVideo := clip("001", 2, func(p *domain.PlayRecord) { p.Date = date })
	withVideo.Video = &domain.VideoMetadata{VideoURL: "https://v/clip.mp4"}

	ranked := rankClips([]domain.Clip{plain, withVideo}, domain.ProviderFilter{}, nil, now)
	if ranked[0].clip.Play.EventID != 2 {
		t.Error("a playable clip should outrank an identical play without one")
	}
}

func TestDedupeClips(t *testing.T) {
	bare := clip("001", 7)
	enriched := clip("001", 7)
	enriched.Video = &domain.VideoMetadata{VideoURL: "https://v/clip.mp4"}
	other := clip("002", 7)

	got := dedupeClips([]domain.Clip{bare, enriched, other})
	if len(got) != 2 {
		t.Fatalf("dedupe kept %d clips, want 2", len(got))
	}
	if got[0].Video == nil {
		t.Error("dedupe should adopt video metadata from the duplicate")
	}
}
