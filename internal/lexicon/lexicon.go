package lexicon

import (
	"sort"
	"strings"

	"playdex/searchservice/internal/domain"
)

// Player is one canonical player entry. Rank orders players by popularity
// (1 = most searched); it breaks ties between fuzzy candidates.
type Player struct {
	Name    string
	ID      string
	Aliases []string
	Rank    int
}

// Team is one canonical franchise entry with the provider's numeric team id.
type Team struct {
	Name     string
	Nickname string
	Abbrev   string
	ID       string
}

// MatchKind distinguishes how a candidate matched, strongest first.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchAlias
	MatchFuzzy
)

// Candidate pairs a player with the way it was found.
type Candidate struct {
	Player *Player
	Kind   MatchKind
}

// Lexicon is the read-only reference table built once at startup.
// All keys are lowercase.
type Lexicon struct {
	players       []*Player
	playersByName map[string]*Player
	playersByWord map[string][]*Player
	aliasOwners   map[string][]*Player
	teamsByToken  map[string]*Team
	vocabulary    []string
}

// Load builds the lexicon from the embedded seed tables.
func Load() *Lexicon {
	lex := &Lexicon{
		playersByName: make(map[string]*Player, len(seedPlayers)),
		playersByWord: make(map[string][]*Player),
		aliasOwners:   make(map[string][]*Player),
		teamsByToken:  make(map[string]*Team, len(seedTeams)*3),
	}

	vocab := make(map[string]struct{})

	for i := range seedPlayers {
		player := &seedPlayers[i]
		lex.players = append(lex.players, player)

		name := strings.ToLower(player.Name)
		lex.playersByName[name] = player
		vocab[name] = struct{}{}

		for _, word := range strings.Fields(name) {
			lex.playersByWord[word] = append(lex.playersByWord[word], player)
			vocab[word] = struct{}{}
		}
		for _, alias := range player.Aliases {
			key := strings.ToLower(alias)
			lex.aliasOwners[key] = append(lex.aliasOwners[key], player)
			vocab[key] = struct{}{}
		}
	}

	for i := range seedTeams {
		team := &seedTeams[i]
		for _, token := range []string{team.Name, team.Nickname, team.Abbrev} {
			key := strings.ToLower(strings.TrimSpace(token))
			if key == "" {
				continue
			}
			lex.teamsByToken[key] = team
			vocab[key] = struct{}{}
		}
	}

	lex.vocabulary = make([]string, 0, len(vocab))
	for word := range vocab {
		lex.vocabulary = append(lex.vocabulary, word)
	}
	sort.Strings(lex.vocabulary)

	return lex
}

// PlayerByName returns the player whose canonical full name matches exactly.
func (l *Lexicon) PlayerByName(name string) (*Player, bool) {
	player, ok := l.playersByName[strings.ToLower(strings.TrimSpace(name))]
	return player, ok
}

// PlayerCandidates returns every player reachable from a single token:
// exact full-name matches, alias matches, then first/last-name matches.
// The result is ordered strongest-kind-first, then by popularity rank.
func (l *Lexicon) PlayerCandidates(token string) []Candidate {
	key := strings.ToLower(strings.TrimSpace(token))
	if key == "" {
		return nil
	}

	var out []Candidate
	seen := make(map[string]struct{})
	add := func(player *Player, kind MatchKind) {
		if _, dup := seen[player.ID]; dup {
			return
		}
		seen[player.ID] = struct{}{}
		out = append(out, Candidate{Player: player, Kind: kind})
	}

	if player, ok := l.playersByName[key]; ok {
		add(player, MatchExact)
	}
	for _, player := range l.aliasOwners[key] {
		add(player, MatchAlias)
	}
	for _, player := range l.playersByWord[key] {
		add(player, MatchAlias)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Player.Rank < out[j].Player.Rank
	})
	return out
}

// TeamByToken resolves a team by full name, nickname, or abbreviation.
func (l *Lexicon) TeamByToken(token string) (*Team, bool) {
	team, ok := l.teamsByToken[strings.ToLower(strings.TrimSpace(token))]
	return team, ok
}

// Players returns all canonical players ordered by popularity rank.
func (l *Lexicon) Players() []*Player {
	out := make([]*Player, len(l.players))
	copy(out, l.players)
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

// Vocabulary returns every known word (names, name parts, aliases, team
// tokens) for spell correction. Sorted, lowercase.
func (l *Lexicon) Vocabulary() []string {
	return l.vocabulary
}

// CanonicalAction maps an action word to its provider measure.
func CanonicalAction(word string) (domain.ContextMeasure, bool) {
	measure, ok := actionSynonyms[strings.ToLower(strings.TrimSpace(word))]
	return measure, ok
}

// ShotSpecifier maps a shot-style word to its canonical description form.
func ShotSpecifier(word string) (string, bool) {
	canonical, ok := shotSpecifierMap[strings.ToLower(strings.TrimSpace(word))]
	return canonical, ok
}

// ScoreSpecifierPhrases returns phrase→specifier pairs, longest phrase first,
// so multi-word phrases win over their substrings.
func ScoreSpecifierPhrases() []ScorePhrase {
	return scorePhrases
}

// ClutchPhrases returns phrase→clutch-window pairs, most specific first.
func ClutchPhrases() []ClutchPhrase {
	return clutchPhrases
}

// MonthCode maps a month word to the provider's month parameter. The
// provider numbers months from the season start, so October is "01".
func MonthCode(word string) (string, bool) {
	code, ok := monthMap[strings.ToLower(strings.TrimSpace(word))]
	return code, ok
}

// ActionWords returns the full action vocabulary for spell correction.
func ActionWords() []string {
	return actionWords
}
