package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"playdex/searchservice/internal/domain"
)

// clutchMargin is the score gap that still counts as a clutch situation.
const clutchMargin = 5

// applyPostFilters narrows fetched clips by the filter dimensions the
// provider cannot express: shot-style description terms, score context,
// clutch margin and zero-point misses.
func applyPostFilters(clips []domain.Clip, filter domain.ProviderFilter) []domain.Clip {
	out := clips
	if len(filter.ShotSpecifiers) > 0 {
		out = filterByDescription(out, filter.ShotSpecifiers)
	}
	if filter.ScoreSpecifier != "" {
		out = filterByScore(out, filter.ScoreSpecifier)
	}
	if filter.ClutchTime != "" {
		out = filterClips(out, func(c domain.Clip) bool {
			return c.Play.MarginBefore() <= clutchMargin
		})
	}
	if filter.ContextMeasure == domain.MeasureMisses {
		out = filterClips(out, func(c domain.Clip) bool {
			return c.Play.PointChange() == 0
		})
	}
	return out
}

func filterClips(clips []domain.Clip, keep func(domain.Clip) bool) []domain.Clip {
	out := make([]domain.Clip, 0, len(clips))
	for _, clip := range clips {
		if keep(clip) {
			out = append(out, clip)
		}
	}
	return out
}

// filterByDescription keeps clips whose description contains every requested
// term on a word boundary. "3PT" additionally matches its spelled variants.
func filterByDescription(clips []domain.Clip, terms []string) []domain.Clip {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		var expr string
		if term == "3PT" {
			expr = `(?i)\b(3PT|3-PT|Three Point)\b`
		} else {
			expr = `(?i)\b` + regexp.QuoteMeta(term) + `\b`
		}
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return filterClips(clips, func(c domain.Clip) bool {
		for _, pattern := range patterns {
			if !pattern.MatchString(c.Play.Description) {
				return false
			}
		}
		return true
	})
}

func filterByScore(clips []domain.Clip, spec domain.ScoreSpecifier) []domain.Clip {
	switch spec {
	case domain.ScoreGameTying:
		return filterClips(clips, func(c domain.Clip) bool {
			return scoreDiffAfter(c.Play) == 0 && c.Play.PointChange() > 0
		})
	case domain.ScoreLeadTaking:
		return filterClips(clips, func(c domain.Clip) bool {
			before := scoreDiffBefore(c.Play)
			after := scoreDiffAfter(c.Play)
			return (before <= 0 && after > 0) || (before >= 0 && after < 0)
		})
	case domain.ScoreBuzzerBeater:
		return filterClips(clips, func(c domain.Clip) bool {
			return clockSeconds(c.Play.TimeRemaining) <= 1 && c.Play.PointChange() > 0
		})
	case domain.ScoreGameWinner:
		// Last period or overtime, at the horn, leaving the shooter's side
		// ahead.
		return filterClips(clips, func(c domain.Clip) bool {
			return c.Play.Period >= 4 &&
				clockSeconds(c.Play.TimeRemaining) <= 1 &&
				c.Play.PointChange() > 0 &&
				scoreDiffAfter(c.Play) != 0
		})
	default:
		return clips
	}
}

func scoreDiffBefore(p domain.PlayRecord) int {
	return p.HomePointsBefore - p.VisitorPointsBefore
}

func scoreDiffAfter(p domain.PlayRecord) int {
	return p.HomePointsAfter - p.VisitorPointsAfter
}

// clockSeconds parses a game clock like "2:45" or "0:00.4" into seconds.
// Unparseable clocks report a large value so they never match end-of-period
// filters.
func clockSeconds(clock string) float64 {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 1 << 20
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 1 << 20
	}
	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 1 << 20
	}
	return float64(minutes*60) + seconds
}

// rankClips orders clips for presentation and attaches a composite match
// score: recency, description affinity with the query leftovers, and a
// bonus for having a playable clip.
func rankClips(clips []domain.Clip, filter domain.ProviderFilter, queryTerms []string, now time.Time) []scoredClip {
	scored := make([]scoredClip, 0, len(clips))
	for _, clip := range clips {
		scored = append(scored, scoredClip{
			clip:  clip,
			score: matchScore(clip, queryTerms, now),
		})
	}

	if filter.SortOrder == domain.SortChronological {
		sort.SliceStable(scored, func(i, j int) bool {
			left, right := scored[i].clip.Play, scored[j].clip.Play
			if !left.Date.Equal(right.Date) {
				return left.Date.Before(right.Date)
			}
			if left.GameID != right.GameID {
				return left.GameID < right.GameID
			}
			return left.EventID < right.EventID
		})
		return scored
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		left, right := scored[i].clip.Play, scored[j].clip.Play
		if !left.Date.Equal(right.Date) {
			return left.Date.After(right.Date)
		}
		if left.GameID != right.GameID {
			return left.GameID < right.GameID
		}
		return left.EventID < right.EventID
	})
	return scored
}

type scoredClip struct {
	clip  domain.Clip
	score float64
}

func matchScore(clip domain.Clip, queryTerms []string, now time.Time) float64 {
	score := 0.0

	// Recency decays over roughly a decade of seasons.
	if !clip.Play.Date.IsZero() {
		age := now.Sub(clip.Play.Date)
		years := age.Hours() / (24 * 365)
		recency := 1 - years/10
		if recency < 0 {
			recency = 0
		}
		score += 0.5 * recency
	}

	if len(queryTerms) > 0 {
		desc := strings.ToLower(clip.Play.Description)
		matched := 0
		for _, term := range queryTerms {
			if strings.Contains(desc, strings.ToLower(term)) {
				matched++
			}
		}
		score += 0.3 * float64(matched) / float64(len(queryTerms))
	}

	if clip.Video != nil && clip.Video.VideoURL != "" {
		score += 0.2
	}

	return score
}

// dedupeClips merges clips by play identity, preferring the copy that
// carries video metadata. Input order is preserved for the survivors.
func dedupeClips(clips []domain.Clip) []domain.Clip {
	seen := make(map[domain.PlayKey]int, len(clips))
	out := make([]domain.Clip, 0, len(clips))
	for _, clip := range clips {
		key := clip.Play.Key()
		if idx, dup := seen[key]; dup {
			if out[idx].Video == nil && clip.Video != nil {
				out[idx].Video = clip.Video
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, clip)
	}
	return out
}
