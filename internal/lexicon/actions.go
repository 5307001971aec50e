package lexicon

import (
	"sort"

	"playdex/searchservice/internal/domain"
)

// actionSynonyms is the many-to-one action table. Every recognized action
// word lands on exactly one provider measure.
var actionSynonyms = buildActionSynonyms()

func buildActionSynonyms() map[string]domain.ContextMeasure {
	groups := map[domain.ContextMeasure][]string{
		domain.MeasurePoints: {
			"point", "points", "pts", "score", "scores", "scoring", "bucket", "buckets",
			"makes", "lays", "flush", "flushes", "middy", "midrange",
		},
		domain.MeasureBlocks: {
			"block", "blocks", "swat", "swats", "swatted", "reject", "rejects",
			"rejection", "rejections", "stuffed",
		},
		domain.MeasureSteals: {
			"steal", "steals", "stolen", "thief", "thieves", "cookie", "cookies",
		},
		domain.MeasureAssists: {
			"assist", "assists", "dime", "dimes", "apple", "apples", "passing",
		},
		domain.MeasureRebounds: {
			"rebound", "rebounds", "board", "boards", "grab", "grabs",
		},
		domain.MeasureTurnovers: {
			"turnover", "turnovers", "giveaway", "giveaways",
		},
		domain.MeasureMisses: {
			"miss", "misses", "missed", "brick", "bricks", "airball", "airballs",
			"clank", "clanks",
		},
		domain.MeasureAttempts: {
			"attempt", "attempts", "shots", "fga", "fgas",
		},
	}

	table := make(map[string]domain.ContextMeasure)
	for measure, words := range groups {
		for _, word := range words {
			table[word] = measure
		}
	}
	// Shot-style words imply scoring plays.
	for word := range shotSpecifierMap {
		if _, taken := table[word]; !taken {
			table[word] = domain.MeasurePoints
		}
	}
	return table
}

var actionWords = func() []string {
	words := make([]string, 0, len(actionSynonyms))
	for word := range actionSynonyms {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}()

// shotSpecifierMap maps shot-style words to the canonical form used in
// provider play descriptions.
var shotSpecifierMap = map[string]string{
	"fade": "Fadeaway", "fades": "Fadeaway", "fadeaway": "Fadeaway", "fadeaways": "Fadeaway",
	"bank": "Bank", "banks": "Bank", "bankshot": "Bank",
	"hook": "Hook", "hooks": "Hook", "hookshot": "Hook",
	"floater": "Floating", "floaters": "Floating", "floating": "Floating",
	"layup": "Layup", "layups": "Layup", "reverse": "Reverse Layup",
	"jumper": "Jump Shot", "jumpers": "Jump Shot", "jump": "Jump Shot",
	"putback": "Putback", "putbacks": "Putback",
	"stepback": "Step Back", "stepbacks": "Step Back", "step": "Step Back",
	"alley": "Alley Oop", "oop": "Alley Oop", "oops": "Alley Oop",
	"pullup": "Pullup", "pullups": "Pullup", "pull": "Pullup", "pulls": "Pullup",
	"tip": "Tip", "tips": "Tip", "tipin": "Tip", "tipins": "Tip",
	"running": "Running", "runner": "Running", "runners": "Running",
	"turnaround": "Turnaround", "turnarounds": "Turnaround",
	"dunk": "Dunk", "dunks": "Dunk", "slam": "Dunk", "slams": "Dunk",
	"jam": "Dunk", "jams": "Dunk", "poster": "Dunk", "posterizes": "Dunk",
	"driving": "Driving", "drive": "Driving", "drives": "Driving",
	"cutting": "Cutting", "cut": "Cutting",
	"three": "3PT", "threes": "3PT", "trey": "3PT", "treys": "3PT",
	"triple": "3PT", "triples": "3PT", "threeball": "3PT", "threeballs": "3PT",
	"treyball": "3PT", "treyballs": "3PT",
}

// ScorePhrase is a query phrase that names a score-context filter.
type ScorePhrase struct {
	Phrase    string
	Specifier domain.ScoreSpecifier
}

// Ordered longest-first so "game winner" beats "winner".
var scorePhrases = []ScorePhrase{
	{Phrase: "buzzer beaters", Specifier: domain.ScoreBuzzerBeater},
	{Phrase: "buzzer beater", Specifier: domain.ScoreBuzzerBeater},
	{Phrase: "game winners", Specifier: domain.ScoreGameWinner},
	{Phrase: "game winner", Specifier: domain.ScoreGameWinner},
	{Phrase: "game winning", Specifier: domain.ScoreGameWinner},
	{Phrase: "game tying", Specifier: domain.ScoreGameTying},
	{Phrase: "lead taking", Specifier: domain.ScoreLeadTaking},
	{Phrase: "lead takers", Specifier: domain.ScoreLeadTaking},
	{Phrase: "lead taker", Specifier: domain.ScoreLeadTaking},
	{Phrase: "go aheads", Specifier: domain.ScoreLeadTaking},
	{Phrase: "go ahead", Specifier: domain.ScoreLeadTaking},
	{Phrase: "tying", Specifier: domain.ScoreGameTying},
}

// ClutchPhrase maps a query phrase to the provider's clutch-time window.
type ClutchPhrase struct {
	Phrase string
	Window string
}

// Ordered most-specific-first: the narrowest window that matches wins.
var clutchPhrases = []ClutchPhrase{
	{Phrase: "last 10 seconds", Window: "Last 10 Seconds"},
	{Phrase: "final seconds", Window: "Last 10 Seconds"},
	{Phrase: "last seconds", Window: "Last 10 Seconds"},
	{Phrase: "last second", Window: "Last 10 Seconds"},
	{Phrase: "final minute", Window: "Last 1 Minute"},
	{Phrase: "last minute", Window: "Last 1 Minute"},
	{Phrase: "end of the game", Window: "Last 5 Minutes"},
	{Phrase: "clutch", Window: "Last 5 Minutes"},
}

// monthMap uses the provider's season-relative month numbering:
// the season opens in October, so October is "01" and September "12".
var monthMap = map[string]string{
	"october": "01", "oct": "01",
	"november": "02", "nov": "02",
	"december": "03", "dec": "03",
	"january": "04", "jan": "04",
	"february": "05", "feb": "05",
	"march": "06", "mar": "06",
	"april": "07", "apr": "07",
	"may": "08",
	"june": "09", "jun": "09",
	"july": "10", "jul": "10",
	"august": "11", "aug": "11",
	"september": "12", "sep": "12",
}
