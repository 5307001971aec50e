package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"playdex/searchservice/internal/domain"
)

// abbreviations are fixed phrase rewrites applied after punctuation is
// stripped, longest phrase first so "3 point shots" wins over "3 point".
// Hyphenated input ("3-pointer") arrives here with the hyphen already a
// space.
var abbreviations = []struct {
	from string
	to   string
}{
	{"3 point shots", "threes"},
	{"3 point shot", "three"},
	{"3pt shots", "threes"},
	{"3pt shot", "three"},
	{"3 pointers", "threes"},
	{"3 pointer", "three"},
	{"3pts", "threes"},
	{"3pt", "three"},
	{"three pointers", "threes"},
	{"three pointer", "three"},
	{"three balls", "threes"},
	{"three ball", "three"},
	{"trey balls", "threes"},
	{"trey ball", "three"},
	{"jump shots", "jumpers"},
	{"jump shot", "jumper"},
	{"slam dunks", "dunks"},
	{"slam dunk", "dunk"},
	{"alley oops", "oops"},
	{"alley oop", "oop"},
	{"field goal attempts", "attempts"},
	{"field goal attempt", "attempt"},
	{"all shots", "attempts"},
	{"shot attempts", "attempts"},
	{"step backs", "stepbacks"},
	{"step back", "stepback"},
	{"pull ups", "pullups"},
	{"pull up", "pullup"},
	{"tip ins", "tips"},
	{"tip in", "tip"},
	{"post season", "postseason"},
	{"play offs", "playoffs"},
	{"play off", "playoffs"},
}

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "by": {}, "from": {},
}

var diacriticFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize builds the immutable Query: lowercase, diacritics folded,
// punctuation stripped, abbreviations expanded, whitespace collapsed.
func Normalize(raw string) domain.Query {
	text := strings.ToLower(strings.TrimSpace(raw))

	if folded, _, err := transform.String(diacriticFolder, text); err == nil {
		text = folded
	}

	// Hyphens and punctuation become spaces so "buzzer-beater" tokenizes.
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '\'':
			// Keep apostrophes inside names like "de'aaron".
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	text = b.String()

	for _, abbr := range abbreviations {
		text = strings.ReplaceAll(text, abbr.from, abbr.to)
	}

	fields := strings.Fields(text)
	kept := fields[:0]
	for _, word := range fields {
		if _, skip := stopwords[word]; skip {
			continue
		}
		kept = append(kept, word)
	}

	return domain.Query{Raw: raw, Normalized: strings.Join(kept, " ")}
}

// containsPhrase reports whether phrase appears in text on word boundaries.
func containsPhrase(text, phrase string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], phrase)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(phrase)
		leftOK := start == 0 || text[start-1] == ' '
		rightOK := end == len(text) || text[end] == ' '
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}
