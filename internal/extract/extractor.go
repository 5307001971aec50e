package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"playdex/searchservice/internal/domain"
	"playdex/searchservice/internal/lexicon"
)

const (
	// fuzzyThreshold is the minimum similarity for a fuzzy entity match.
	fuzzyThreshold = 0.8
	// fuzzyEpsilon is the score band inside which two fuzzy candidates are
	// considered tied; ties fall back to popularity rank or ambiguity.
	fuzzyEpsilon = 0.05
	// maxEditDistance bounds token spell correction.
	maxEditDistance = 2
	// maxAlternates caps the runner-up list on ambiguous extractions.
	maxAlternates = 3

	confidenceExact = 1.0
	confidenceAlias = 0.9
	confidenceWord  = 0.85
)

// Extractor turns a normalized query into scored entities. It is a pure
// function over the lexicon and the clock; safe for concurrent use.
type Extractor struct {
	lex *lexicon.Lexicon
	now func() time.Time

	correctionVocab []string
	vocabSet        map[string]struct{}
}

type Option func(*Extractor)

// WithClock overrides the time source used to anchor relative phrases.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

func New(lex *lexicon.Lexicon, opts ...Option) *Extractor {
	e := &Extractor{
		lex: lex,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	vocab := make([]string, 0, len(lex.Vocabulary())+len(lexicon.ActionWords()))
	vocab = append(vocab, lex.Vocabulary()...)
	vocab = append(vocab, lexicon.ActionWords()...)
	vocab = append(vocab, "playoffs", "postseason", "preseason", "finals",
		"season", "clutch", "chronological")
	e.correctionVocab = vocab
	e.vocabSet = make(map[string]struct{}, len(vocab))
	for _, word := range vocab {
		e.vocabSet[word] = struct{}{}
	}

	return e
}

// Extract resolves entities from a query. It never fails: on zero matches it
// returns a mostly-empty result with the sport defaulted, and downstream
// planning degrades to free-text search.
func (e *Extractor) Extract(query domain.Query) domain.ExtractedEntities {
	now := e.now()
	ents := domain.ExtractedEntities{Sport: "basketball"}

	text := query.Normalized
	if strings.TrimSpace(text) == "" {
		ents.SeasonType = domain.SeasonTypeRegular
		return ents
	}

	ents.SeasonType = parseSeasonType(text)
	ents.TimeRange = parseTimeRange(text, now, ents.SeasonType == domain.SeasonTypeAllStar)
	ents.ScoreSpecifier = e.extractScoreSpecifier(text)
	ents.ClutchTime = e.extractClutchTime(text)
	ents.SortOrder = extractSortOrder(text)

	raw := strings.Fields(text)
	consumed := phraseConsumed(raw, text, &ents)
	tokens := e.spellCorrect(raw, consumed)

	e.resolvePlayer(tokens, consumed, &ents)
	e.resolveTeam(tokens, consumed, &ents)
	e.resolveActions(tokens, consumed, &ents)
	e.extractMonth(tokens, consumed, &ents)

	// A clutch or score phrase alone is still a scoring query.
	if ents.Action == "" && (ents.ScoreSpecifier != "" || ents.ClutchTime != "" || len(ents.ActionDetail) > 0) {
		ents.Action = domain.MeasurePoints
	}

	for i, token := range tokens {
		if consumed[i] {
			continue
		}
		if _, skip := connectives[token]; skip {
			continue
		}
		ents.Leftover = append(ents.Leftover, token)
	}

	return ents
}

// connectives glue entity mentions together and carry no search meaning on
// their own. They never reach the leftover list.
var connectives = map[string]struct{}{
	"in": {}, "on": {}, "at": {}, "vs": {}, "versus": {}, "against": {},
	"during": {}, "with": {}, "for": {}, "and": {}, "to": {},
}

// phraseConsumed marks the tokens already claimed by the phrase-level passes
// so later stages neither respell them nor report them as unrecognized.
func phraseConsumed(tokens []string, text string, ents *domain.ExtractedEntities) []bool {
	consumed := make([]bool, len(tokens))

	if ents.ScoreSpecifier != "" {
		for _, entry := range lexicon.ScoreSpecifierPhrases() {
			if entry.Specifier == ents.ScoreSpecifier && containsPhrase(text, entry.Phrase) {
				coverPhrase(tokens, consumed, entry.Phrase)
			}
		}
	}
	if ents.ClutchTime != "" {
		for _, entry := range lexicon.ClutchPhrases() {
			if entry.Window == ents.ClutchTime && containsPhrase(text, entry.Phrase) {
				coverPhrase(tokens, consumed, entry.Phrase)
			}
		}
	}

	switch ents.SeasonType {
	case domain.SeasonTypePlayoffs:
		for _, phrase := range []string{"playoffs", "playoff", "postseason", "finals"} {
			coverPhrase(tokens, consumed, phrase)
		}
	case domain.SeasonTypePre:
		coverPhrase(tokens, consumed, "preseason")
	case domain.SeasonTypeAllStar:
		coverPhrase(tokens, consumed, "all star")
		coverPhrase(tokens, consumed, "allstar")
	}

	if ents.SortOrder == domain.SortChronological {
		for _, phrase := range []string{"chronological", "oldest first", "earliest first"} {
			coverPhrase(tokens, consumed, phrase)
		}
	}

	if ents.TimeRange != nil {
		coverTimeTokens(tokens, consumed)
	}

	return consumed
}

// coverPhrase marks every occurrence of the phrase's word sequence.
func coverPhrase(tokens []string, consumed []bool, phrase string) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return
	}
	for i := 0; i+len(words) <= len(tokens); i++ {
		match := true
		for j, word := range words {
			if tokens[i+j] != word {
				match = false
				break
			}
		}
		if match {
			markConsumed(consumed, i, len(words))
		}
	}
}

// coverTimeTokens claims year tokens and relative time phrases once a time
// range has resolved.
func coverTimeTokens(tokens []string, consumed []bool) {
	for i, token := range tokens {
		if !isYearToken(token) {
			continue
		}
		consumed[i] = true
		// The two-digit tail of a season pair ("2012 13").
		if year, err := strconv.Atoi(token); err == nil && i+1 < len(tokens) &&
			tokens[i+1] == fmt.Sprintf("%02d", (year+1)%100) {
			consumed[i+1] = true
		}
	}
	for _, phrase := range []string{
		"this season", "last season", "last week", "past week",
		"last month", "past month", "yesterday", "today", "tonight",
	} {
		coverPhrase(tokens, consumed, phrase)
	}
}

func isYearToken(token string) bool {
	if len(token) != 4 || !(strings.HasPrefix(token, "19") || strings.HasPrefix(token, "20")) {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// spellCorrect replaces near-miss tokens with their closest lexicon word.
// Short tokens, numbers, connectives, and tokens a phrase pass already
// claimed pass through untouched.
func (e *Extractor) spellCorrect(tokens []string, claimed []bool) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		if claimed[i] {
			out[i] = token
			continue
		}
		if _, skip := connectives[token]; skip {
			out[i] = token
			continue
		}
		out[i] = e.correctToken(token)
	}
	return out
}

func (e *Extractor) correctToken(token string) string {
	if len(token) < 4 || hasDigit(token) {
		return token
	}
	// Known words are never rewritten.
	if _, ok := e.vocabSet[token]; ok {
		return token
	}
	bestWord := token
	bestDist := maxEditDistance + 1
	for _, word := range e.correctionVocab {
		// Length difference is a lower bound on edit distance.
		if diff := len(word) - len(token); diff > maxEditDistance || diff < -maxEditDistance {
			continue
		}
		if dist := levenshtein.ComputeDistance(token, word); dist < bestDist {
			bestDist = dist
			bestWord = word
		}
	}
	// A rewrite must clear the same similarity bar as fuzzy entity matching,
	// or a short token two edits away lands on an unrelated word.
	if bestDist <= maxEditDistance && similarity(token, bestWord) >= fuzzyThreshold {
		return bestWord
	}
	return token
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// resolvePlayer applies the tie-break ladder: exact full name, then alias or
// name-part, then fuzzy full-name similarity. Fuzzy candidates inside the
// epsilon band of each other resolve by popularity rank when one clearly
// leads; otherwise the extraction is marked ambiguous and the runners-up
// are kept as alternates.
func (e *Extractor) resolvePlayer(tokens []string, consumed []bool, ents *domain.ExtractedEntities) {
	// Full-name and multi-word-alias matches over bigrams and trigrams.
	for span := 3; span >= 2; span-- {
		for i := 0; i+span <= len(tokens); i++ {
			if anyConsumed(consumed, i, span) {
				continue
			}
			gram := strings.Join(tokens[i:i+span], " ")
			cands := e.lex.PlayerCandidates(gram)
			if len(cands) == 0 {
				continue
			}
			conf := confidenceAlias
			if cands[0].Kind == lexicon.MatchExact {
				conf = confidenceExact
			}
			ents.Player = &domain.EntityMatch{Name: cands[0].Player.Name, ID: cands[0].Player.ID, Confidence: conf}
			markConsumed(consumed, i, span)
			return
		}
	}

	// Alias and name-part matches on single tokens.
	type scored struct {
		player     *lexicon.Player
		kind       lexicon.MatchKind
		confidence float64
		index      int
	}
	var wordHits []scored
	for i, token := range tokens {
		if consumed[i] {
			continue
		}
		for _, cand := range e.lex.PlayerCandidates(token) {
			conf := confidenceWord
			if cand.Kind == lexicon.MatchExact {
				conf = confidenceExact
			} else if isAlias(cand.Player, token) {
				conf = confidenceAlias
			}
			wordHits = append(wordHits, scored{player: cand.Player, kind: cand.Kind, confidence: conf, index: i})
		}
	}
	if len(wordHits) > 0 {
		best := wordHits[0]
		for _, hit := range wordHits[1:] {
			if hit.confidence > best.confidence ||
				(hit.confidence == best.confidence && hit.player.Rank < best.player.Rank) {
				best = hit
			}
		}
		ents.Player = &domain.EntityMatch{Name: best.player.Name, ID: best.player.ID, Confidence: best.confidence}
		consumed[best.index] = true
		for _, hit := range wordHits {
			if hit.player.ID == best.player.ID {
				consumed[hit.index] = true
				continue
			}
			if hit.confidence == best.confidence {
				ents.Ambiguous = true
			}
			if len(ents.Alternates) < maxAlternates && !containsMatch(ents.Alternates, hit.player.ID) {
				ents.Alternates = append(ents.Alternates, domain.EntityMatch{
					Name: hit.player.Name, ID: hit.player.ID, Confidence: hit.confidence,
				})
			}
		}
		return
	}

	// Fuzzy full-name similarity over bigrams.
	type fuzzyHit struct {
		player *lexicon.Player
		score  float64
		index  int
		span   int
	}
	var hits []fuzzyHit
	for span := 2; span >= 1; span-- {
		for i := 0; i+span <= len(tokens); i++ {
			if anyConsumed(consumed, i, span) {
				continue
			}
			gram := strings.Join(tokens[i:i+span], " ")
			if len(gram) < 5 {
				continue
			}
			for _, player := range e.lex.Players() {
				score := similarity(gram, strings.ToLower(player.Name))
				if score >= fuzzyThreshold {
					hits = append(hits, fuzzyHit{player: player, score: score, index: i, span: span})
				}
			}
		}
		if len(hits) > 0 {
			break
		}
	}
	if len(hits) == 0 {
		return
	}

	best := hits[0]
	for _, hit := range hits[1:] {
		if hit.score > best.score {
			best = hit
		}
	}

	var contenders []fuzzyHit
	for _, hit := range hits {
		if hit.player.ID != best.player.ID && best.score-hit.score <= fuzzyEpsilon {
			contenders = append(contenders, hit)
		}
	}

	if len(contenders) > 0 {
		// Rank decides only when the leader is also the most popular;
		// otherwise keep the top candidates and flag the ambiguity.
		leaderByRank := best
		for _, hit := range contenders {
			if hit.player.Rank < leaderByRank.player.Rank {
				leaderByRank = hit
			}
		}
		if leaderByRank.player.ID != best.player.ID {
			ents.Ambiguous = true
		}
		best = leaderByRank
		for _, hit := range hits {
			if hit.player.ID == best.player.ID {
				continue
			}
			if len(ents.Alternates) < maxAlternates && !containsMatch(ents.Alternates, hit.player.ID) {
				ents.Alternates = append(ents.Alternates, domain.EntityMatch{
					Name: hit.player.Name, ID: hit.player.ID, Confidence: hit.score,
				})
			}
		}
	}

	if ents.Ambiguous {
		// No single primary resolution: promote the leader to the head of
		// the alternates instead of forcing a choice.
		ents.Alternates = append([]domain.EntityMatch{{
			Name: best.player.Name, ID: best.player.ID, Confidence: best.score,
		}}, ents.Alternates...)
		if len(ents.Alternates) > maxAlternates {
			ents.Alternates = ents.Alternates[:maxAlternates]
		}
		return
	}

	ents.Player = &domain.EntityMatch{Name: best.player.Name, ID: best.player.ID, Confidence: best.score}
	markConsumed(consumed, best.index, best.span)
}

func (e *Extractor) resolveTeam(tokens []string, consumed []bool, ents *domain.ExtractedEntities) {
	assign := func(team *lexicon.Team, conf float64) {
		match := &domain.EntityMatch{Name: team.Name, ID: team.ID, Confidence: conf}
		// With a resolved player, a team mention reads as the opponent
		// ("lebron dunks against the warriors").
		if ents.Player != nil {
			ents.OpponentTeam = match
		} else {
			ents.Team = match
		}
	}

	for span := 3; span >= 2; span-- {
		for i := 0; i+span <= len(tokens); i++ {
			if anyConsumed(consumed, i, span) {
				continue
			}
			gram := strings.Join(tokens[i:i+span], " ")
			if team, ok := e.lex.TeamByToken(gram); ok {
				assign(team, confidenceExact)
				markConsumed(consumed, i, span)
				return
			}
		}
	}
	for i, token := range tokens {
		if consumed[i] {
			continue
		}
		if team, ok := e.lex.TeamByToken(token); ok {
			assign(team, confidenceAlias)
			consumed[i] = true
			return
		}
	}
}

func (e *Extractor) resolveActions(tokens []string, consumed []bool, ents *domain.ExtractedEntities) {
	measures := make(map[domain.ContextMeasure]struct{})
	specifierSet := make(map[string]struct{})

	for i, token := range tokens {
		if consumed[i] {
			continue
		}
		matched := false
		if measure, ok := lexicon.CanonicalAction(token); ok {
			measures[measure] = struct{}{}
			matched = true
		}
		if canonical, ok := lexicon.ShotSpecifier(token); ok {
			specifierSet[canonical] = struct{}{}
			matched = true
		}
		if matched {
			consumed[i] = true
		}
	}

	// Misses and makes cannot both be the headline measure; a miss query
	// that also tripped scoring words is a miss query.
	if _, miss := measures[domain.MeasureMisses]; miss {
		delete(measures, domain.MeasurePoints)
	}

	for _, measure := range []domain.ContextMeasure{
		domain.MeasureMisses, domain.MeasureBlocks, domain.MeasureSteals,
		domain.MeasureAssists, domain.MeasureRebounds, domain.MeasureTurnovers,
		domain.MeasureAttempts, domain.MeasurePoints,
	} {
		if _, ok := measures[measure]; ok {
			ents.Action = measure
			break
		}
	}

	for specifier := range specifierSet {
		ents.ActionDetail = append(ents.ActionDetail, specifier)
	}
	sort.Strings(ents.ActionDetail)
}

func (e *Extractor) extractScoreSpecifier(text string) domain.ScoreSpecifier {
	for _, entry := range lexicon.ScoreSpecifierPhrases() {
		if containsPhrase(text, entry.Phrase) {
			return entry.Specifier
		}
	}
	return ""
}

func (e *Extractor) extractClutchTime(text string) string {
	for _, entry := range lexicon.ClutchPhrases() {
		if containsPhrase(text, entry.Phrase) {
			return entry.Window
		}
	}
	return ""
}

func (e *Extractor) extractMonth(tokens []string, consumed []bool, ents *domain.ExtractedEntities) {
	for i, token := range tokens {
		if consumed[i] {
			continue
		}
		if code, ok := lexicon.MonthCode(token); ok {
			ents.Month = code
			consumed[i] = true
			return
		}
	}
}

func extractSortOrder(text string) domain.SortOrder {
	if containsPhrase(text, "chronological") || containsPhrase(text, "oldest first") ||
		containsPhrase(text, "earliest first") {
		return domain.SortChronological
	}
	return domain.SortRecency
}

// similarity is a normalized edit-distance score in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

func isAlias(player *lexicon.Player, token string) bool {
	for _, alias := range player.Aliases {
		if strings.EqualFold(alias, token) {
			return true
		}
	}
	return false
}

func containsMatch(matches []domain.EntityMatch, id string) bool {
	for _, m := range matches {
		if m.ID == id {
			return true
		}
	}
	return false
}

func markConsumed(consumed []bool, start, span int) {
	for i := start; i < start+span && i < len(consumed); i++ {
		consumed[i] = true
	}
}

func anyConsumed(consumed []bool, start, span int) bool {
	for i := start; i < start+span && i < len(consumed); i++ {
		if consumed[i] {
			return true
		}
	}
	return false
}
