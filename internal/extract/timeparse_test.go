package extract

import (
	"testing"
	"time"

	"playdex/searchservice/internal/domain"
)

// Mid-season reference point: January 2024 sits inside the 2023-24 season.
var midSeason = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

func TestSeasonCode(t *testing.T) {
	tests := []struct {
		start int
		want  string
	}{
		{2012, "2012-13"},
		{1999, "1999-00"},
		{2023, "2023-24"},
	}
	for _, tt := range tests {
		if got := seasonCode(tt.start); got != tt.want {
			t.Errorf("seasonCode(%d) = %q, want %q", tt.start, got, tt.want)
		}
	}
}

func TestCurrentSeasonStart(t *testing.T) {
	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), 2023},
		{time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC), 2023},
	}
	for _, tt := range tests {
		if got := currentSeasonStart(tt.now); got != tt.want {
			t.Errorf("currentSeasonStart(%v) = %d, want %d", tt.now, got, tt.want)
		}
	}
}

func TestParseTimeRangeSeasons(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		allStar bool
		want    string
	}{
		{name: "single year", text: "lebron blocks in 2012", want: "2012-13"},
		{name: "season pair", text: "dunks 2015 16", want: "2015-16"},
		{name: "full season pair", text: "dunks 2015 2016", want: "2015-16"},
		{name: "non consecutive pair falls back to first year", text: "games 2012 45", want: "2012-13"},
		{name: "all star year maps back a season", text: "dunk contest 2016", allStar: true, want: "2015-16"},
		{name: "this season", text: "steals this season", want: "2023-24"},
		{name: "last season", text: "steals last season", want: "2022-23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTimeRange(tt.text, midSeason, tt.allStar)
			if got == nil {
				t.Fatalf("parseTimeRange(%q) = nil, want season %q", tt.text, tt.want)
			}
			if got.SeasonCode != tt.want {
				t.Errorf("parseTimeRange(%q).SeasonCode = %q, want %q", tt.text, got.SeasonCode, tt.want)
			}
		})
	}
}

func TestParseTimeRangeRelative(t *testing.T) {
	got := parseTimeRange("highlights last week", midSeason, false)
	if got == nil {
		t.Fatal("parseTimeRange returned nil for a relative phrase")
	}
	if got.Start == nil || got.End == nil {
		t.Fatal("relative range must carry explicit bounds")
	}
	if days := got.End.Sub(*got.Start).Hours() / 24; days != 7 {
		t.Errorf("last week spans %.0f days, want 7", days)
	}
	if got.SeasonCode != "2023-24" {
		t.Errorf("relative range SeasonCode = %q, want 2023-24", got.SeasonCode)
	}
}

func TestParseTimeRangeAbsent(t *testing.T) {
	if got := parseTimeRange("lebron james dunks", midSeason, false); got != nil {
		t.Errorf("parseTimeRange without a time cue = %+v, want nil", got)
	}
}

func TestParseSeasonType(t *testing.T) {
	tests := []struct {
		text string
		want domain.SeasonType
	}{
		{"harden in playoffs", domain.SeasonTypePlayoffs},
		{"finals blocks", domain.SeasonTypePlayoffs},
		{"postseason threes", domain.SeasonTypePlayoffs},
		{"preseason minutes", domain.SeasonTypePre},
		{"all star dunks", domain.SeasonTypeAllStar},
		{"regular night", domain.SeasonTypeRegular},
	}
	for _, tt := range tests {
		if got := parseSeasonType(tt.text); got != tt.want {
			t.Errorf("parseSeasonType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
