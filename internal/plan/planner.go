// Package plan turns extracted entities into provider filters. Planning
// never fails: tokens nothing recognized degrade to a free-text search,
// which is strictly wider than returning an error.
package plan

import (
	"strings"

	"playdex/searchservice/internal/domain"
)

// Build maps entities onto the provider's filter surface.
func Build(query domain.Query, ents domain.ExtractedEntities) domain.ProviderFilter {
	filter := domain.ProviderFilter{
		SeasonType: ents.SeasonType,
		SortOrder:  ents.SortOrder,
	}

	switch {
	case ents.Player != nil:
		filter.PlayerID = ents.Player.ID
		filter.LowConfidence = ents.Player.Confidence < confidenceFloor || ents.Ambiguous
	case ents.Ambiguous && len(ents.Alternates) > 0:
		// No primary resolution: plan around the strongest alternate but
		// mark the result so callers can surface the uncertainty.
		filter.PlayerID = ents.Alternates[0].ID
		filter.LowConfidence = true
	}

	if ents.Team != nil {
		filter.TeamID = ents.Team.ID
	}
	if ents.OpponentTeam != nil {
		filter.OpponentTeamID = ents.OpponentTeam.ID
	}

	if ents.Action != "" {
		filter.ContextMeasure = ents.Action
	} else if filter.PlayerID != "" || filter.TeamID != "" {
		// The provider requires a measure once an entity narrows the
		// query; points is the widest play set.
		filter.ContextMeasure = domain.MeasurePoints
	}

	filter.ShotSpecifiers = append(filter.ShotSpecifiers, ents.ActionDetail...)
	filter.ScoreSpecifier = ents.ScoreSpecifier
	filter.ClutchTime = ents.ClutchTime
	filter.Month = ents.Month

	if tr := ents.TimeRange; tr != nil {
		filter.Season = tr.SeasonCode
		filter.DateFrom = tr.Start
		filter.DateTo = tr.End
	}

	// Free text carries only the tokens extraction could not place. Tokens
	// that resolved to an action, specifier, or phrase already act through
	// the structured filters above; repeating them as literal description
	// text would exclude plays that phrase the concept differently.
	if len(ents.Leftover) > 0 && filter.PlayerID == "" && filter.TeamID == "" && filter.OpponentTeamID == "" {
		filter.FreeText = strings.Join(ents.Leftover, " ")
		filter.LowConfidence = true
	}

	return filter
}

// confidenceFloor marks resolutions below it as low confidence so results
// can be labeled rather than silently trusted.
const confidenceFloor = 0.85

// Describe renders a one-line interpretation of the filter for responses.
func Describe(ents domain.ExtractedEntities, filter domain.ProviderFilter) string {
	var parts []string

	if ents.Player != nil {
		parts = append(parts, ents.Player.Name)
	} else if filter.PlayerID != "" && len(ents.Alternates) > 0 {
		parts = append(parts, ents.Alternates[0].Name+" (best guess)")
	}
	if ents.Team != nil {
		parts = append(parts, ents.Team.Name)
	}

	if filter.ContextMeasure != "" {
		parts = append(parts, measureLabel(filter.ContextMeasure))
	}
	if len(filter.ShotSpecifiers) > 0 {
		parts = append(parts, strings.ToLower(strings.Join(filter.ShotSpecifiers, ", ")))
	}
	if filter.ScoreSpecifier != "" {
		parts = append(parts, scoreLabel(filter.ScoreSpecifier))
	}
	if filter.ClutchTime != "" {
		parts = append(parts, "in the "+strings.ToLower(filter.ClutchTime))
	}

	if ents.OpponentTeam != nil {
		parts = append(parts, "vs "+ents.OpponentTeam.Name)
	}
	if filter.Season != "" {
		parts = append(parts, filter.Season)
	}
	if filter.SeasonType != "" && filter.SeasonType != domain.SeasonTypeRegular {
		parts = append(parts, strings.ToLower(string(filter.SeasonType)))
	}

	if len(parts) == 0 {
		if filter.FreeText != "" {
			return "text search: " + filter.FreeText
		}
		return "all plays"
	}
	return strings.Join(parts, " · ")
}

func measureLabel(measure domain.ContextMeasure) string {
	switch measure {
	case domain.MeasurePoints:
		return "scoring plays"
	case domain.MeasureBlocks:
		return "blocks"
	case domain.MeasureSteals:
		return "steals"
	case domain.MeasureAssists:
		return "assists"
	case domain.MeasureRebounds:
		return "rebounds"
	case domain.MeasureTurnovers:
		return "turnovers"
	case domain.MeasureMisses:
		return "missed shots"
	case domain.MeasureAttempts:
		return "shot attempts"
	default:
		return string(measure)
	}
}

func scoreLabel(spec domain.ScoreSpecifier) string {
	switch spec {
	case domain.ScoreBuzzerBeater:
		return "buzzer beaters"
	case domain.ScoreGameWinner:
		return "game winners"
	case domain.ScoreGameTying:
		return "game-tying shots"
	case domain.ScoreLeadTaking:
		return "lead-taking shots"
	default:
		return string(spec)
	}
}
