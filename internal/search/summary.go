package search

import (
	"fmt"

	"playdex/searchservice/internal/domain"
	"playdex/searchservice/internal/plan"
)

// buildSummary produces the hedged natural-language framing of a page.
// Low-confidence interpretations say so rather than asserting a match.
func buildSummary(query domain.Query, ents domain.ExtractedEntities, filter domain.ProviderFilter, results []domain.SearchResult) domain.AISummary {
	interpretation := plan.Describe(ents, filter)

	var summary string
	switch {
	case len(results) == 0:
		summary = fmt.Sprintf("No clips found for %q. Try a simpler query like 'LeBron dunks' or 'Curry threes'.", query.Raw)
	case filter.LowConfidence:
		summary = fmt.Sprintf("Found %d clips that may match %q (interpreted as %s).", len(results), query.Raw, interpretation)
	default:
		summary = fmt.Sprintf("Found %d clips matching %q (%s).", len(results), query.Raw, interpretation)
	}

	return domain.AISummary{
		Summary:     trimSummary(summary),
		ResultCount: len(results),
		Insights:    buildInsights(ents, filter, results),
	}
}

func buildInsights(ents domain.ExtractedEntities, filter domain.ProviderFilter, results []domain.SearchResult) []string {
	var insights []string

	if len(results) == 0 {
		insights = append(insights, "No clips found. Try broadening your search.")
		if filter.Season != "" && filter.Season < "2019-20" {
			insights = append(insights, "Video coverage is sparse before the 2019-20 season.")
		}
		return insights
	}

	if ents.Player != nil {
		insights = append(insights, "Showing clips featuring "+ents.Player.Name)
	}
	if ents.Ambiguous && len(ents.Alternates) > 1 {
		insights = append(insights, fmt.Sprintf("The name was ambiguous; also consider %s.", ents.Alternates[1].Name))
	}
	if ents.OpponentTeam != nil {
		insights = append(insights, "Limited to games against the "+ents.OpponentTeam.Name)
	}

	clutch := 0
	withVideo := 0
	for _, r := range results {
		if r.Play.Period >= 4 && r.Play.MarginBefore() <= clutchMargin {
			clutch++
		}
		if r.WatchLinks.Video != "" {
			withVideo++
		}
	}
	if clutch > 0 && filter.ClutchTime == "" {
		insights = append(insights, fmt.Sprintf("%d of these plays came in close fourth quarters.", clutch))
	}
	if withVideo < len(results) {
		insights = append(insights, "Some plays have no direct clip; search links are provided instead.")
	}
	if len(results) > 10 {
		insights = append(insights, "Many clips available - showing most recent")
	}

	return insights
}

const maxSummaryLen = 300

func trimSummary(s string) string {
	if len(s) <= maxSummaryLen {
		return s
	}
	return s[:maxSummaryLen-3] + "..."
}
