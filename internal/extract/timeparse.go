package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"playdex/searchservice/internal/domain"
)

var (
	seasonPairPattern = regexp.MustCompile(`\b(19\d{2}|20\d{2})\s?(19|20)?(\d{2})\b`)
	singleYearPattern = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
)

// seasonCode formats the "YYYY-YY" code for the season starting in startYear.
func seasonCode(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// CurrentSeasonCode returns the "YYYY-YY" code of the season containing now.
func CurrentSeasonCode(now time.Time) string {
	return seasonCode(currentSeasonStart(now))
}

// currentSeasonStart returns the start year of the season containing now.
// Seasons open in October.
func currentSeasonStart(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}

// parseTimeRange resolves time expressions in the normalized query text.
// Explicit seasons and years map to a season code; relative phrases anchor
// to now. Returns nil when no time expression is present.
func parseTimeRange(text string, now time.Time, allStar bool) *domain.TimeRange {
	if m := seasonPairPattern.FindStringSubmatch(text); m != nil {
		start, _ := strconv.Atoi(m[1])
		tail, _ := strconv.Atoi(m[3])
		// Only accept pairs that describe consecutive years ("2012 13").
		if tail == (start+1)%100 {
			return &domain.TimeRange{SeasonCode: seasonCode(start)}
		}
	}

	if m := singleYearPattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		if allStar {
			// All-Star weekend falls in February, inside the season that
			// started the previous autumn.
			return &domain.TimeRange{SeasonCode: seasonCode(year - 1)}
		}
		// "in 2012" names the season starting that calendar year.
		return &domain.TimeRange{SeasonCode: seasonCode(year)}
	}

	switch {
	case containsPhrase(text, "this season"):
		return &domain.TimeRange{SeasonCode: seasonCode(currentSeasonStart(now))}
	case containsPhrase(text, "last season"):
		return &domain.TimeRange{SeasonCode: seasonCode(currentSeasonStart(now) - 1)}
	case containsPhrase(text, "last week") || containsPhrase(text, "past week"):
		return relativeRange(now, 7)
	case containsPhrase(text, "last month") || containsPhrase(text, "past month"):
		return relativeRange(now, 30)
	case containsPhrase(text, "yesterday"):
		start := now.AddDate(0, 0, -1).Truncate(24 * time.Hour)
		end := start.Add(24 * time.Hour)
		return &domain.TimeRange{Start: &start, End: &end, SeasonCode: seasonCode(currentSeasonStart(now))}
	case containsPhrase(text, "today") || containsPhrase(text, "tonight"):
		start := now.Truncate(24 * time.Hour)
		end := start.Add(24 * time.Hour)
		return &domain.TimeRange{Start: &start, End: &end, SeasonCode: seasonCode(currentSeasonStart(now))}
	}

	return nil
}

func relativeRange(now time.Time, days int) *domain.TimeRange {
	start := now.AddDate(0, 0, -days)
	end := now
	return &domain.TimeRange{
		Start:      &start,
		End:        &end,
		SeasonCode: seasonCode(currentSeasonStart(now)),
	}
}

// parseSeasonType recognizes categorical season phrases. "finals" counts as
// playoffs; absent any cue the regular season is assumed.
func parseSeasonType(text string) domain.SeasonType {
	switch {
	case containsPhrase(text, "playoffs") || containsPhrase(text, "playoff") ||
		containsPhrase(text, "postseason") || containsPhrase(text, "finals"):
		return domain.SeasonTypePlayoffs
	case containsPhrase(text, "preseason"):
		return domain.SeasonTypePre
	case containsPhrase(text, "all star") || containsPhrase(text, "allstar"):
		return domain.SeasonTypeAllStar
	default:
		return domain.SeasonTypeRegular
	}
}
