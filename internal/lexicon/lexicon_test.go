package lexicon

import (
	"strings"
	"testing"

	"playdex/searchservice/internal/domain"
)

func TestLoadBuildsLookups(t *testing.T) {
	lex := Load()

	player, ok := lex.PlayerByName("LeBron James")
	if !ok {
		t.Fatal("LeBron James missing from the lexicon")
	}
	if player.ID != "2544" {
		t.Errorf("LeBron James ID = %q, want 2544", player.ID)
	}

	if _, ok := lex.PlayerByName("nobody here"); ok {
		t.Error("unknown name should not resolve")
	}

	team, ok := lex.TeamByToken("warriors")
	if !ok {
		t.Fatal("warriors nickname missing")
	}
	if team.ID != "1610612744" {
		t.Errorf("warriors ID = %q, want 1610612744", team.ID)
	}
	if byAbbrev, _ := lex.TeamByToken("gsw"); byAbbrev != team {
		t.Error("abbreviation and nickname must resolve to the same team")
	}
}

func TestPlayerCandidatesOrdering(t *testing.T) {
	lex := Load()

	cands := lex.PlayerCandidates("james")
	if len(cands) < 2 {
		t.Fatalf("candidates for %q = %d, want LeBron and Harden at least", "james", len(cands))
	}
	if cands[0].Player.ID != "2544" {
		t.Errorf("first candidate = %s, want the lower-rank player first", cands[0].Player.Name)
	}

	cands = lex.PlayerCandidates("giannis")
	if len(cands) != 1 || cands[0].Player.ID != "203507" {
		t.Fatalf("alias lookup for giannis = %+v", cands)
	}

	if cands := lex.PlayerCandidates("greek freak"); len(cands) != 1 || cands[0].Player.ID != "203507" {
		t.Errorf("multi-word alias lookup failed: %+v", cands)
	}

	if cands := lex.PlayerCandidates(""); cands != nil {
		t.Errorf("empty token candidates = %+v, want nil", cands)
	}
}

func TestVocabularyIsLowercaseSorted(t *testing.T) {
	lex := Load()
	vocab := lex.Vocabulary()
	if len(vocab) == 0 {
		t.Fatal("empty vocabulary")
	}
	for i, word := range vocab {
		if word != strings.ToLower(word) {
			t.Errorf("vocabulary word %q not lowercase", word)
		}
		if i > 0 && vocab[i-1] > word {
			t.Fatalf("vocabulary unsorted at %d: %q > %q", i, vocab[i-1], word)
		}
	}
}

func TestCanonicalAction(t *testing.T) {
	tests := []struct {
		word string
		want domain.ContextMeasure
	}{
		{"blocks", domain.MeasureBlocks},
		{"swats", domain.MeasureBlocks},
		{"dimes", domain.MeasureAssists},
		{"boards", domain.MeasureRebounds},
		{"bricks", domain.MeasureMisses},
		{"dunks", domain.MeasurePoints},
		{"threes", domain.MeasurePoints},
	}
	for _, tt := range tests {
		got, ok := CanonicalAction(tt.word)
		if !ok {
			t.Errorf("CanonicalAction(%q) not found", tt.word)
			continue
		}
		if got != tt.want {
			t.Errorf("CanonicalAction(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
	if _, ok := CanonicalAction("zamboni"); ok {
		t.Error("unknown word should not map to a measure")
	}
}

func TestShotSpecifier(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"fadeaway", "Fadeaway"},
		{"stepbacks", "Step Back"},
		{"oop", "Alley Oop"},
		{"dunks", "Dunk"},
	}
	for _, tt := range tests {
		got, ok := ShotSpecifier(tt.word)
		if !ok || got != tt.want {
			t.Errorf("ShotSpecifier(%q) = %q, %v, want %q", tt.word, got, ok, tt.want)
		}
	}
}

func TestScoreSpecifierPhrasesLongestFirst(t *testing.T) {
	phrases := ScoreSpecifierPhrases()
	for _, p := range phrases {
		if p.Phrase == "buzzer beater" && p.Specifier != domain.ScoreBuzzerBeater {
			t.Errorf("buzzer beater maps to %q, want BB", p.Specifier)
		}
	}
	// Bare phrases must come after their more specific variants so the
	// first match wins.
	var sawGameTying bool
	for _, p := range phrases {
		if p.Phrase == "game tying" {
			sawGameTying = true
		}
		if p.Phrase == "tying" && !sawGameTying {
			t.Fatal("bare phrase ordered before its more specific variant")
		}
	}
}

func TestMonthCode(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"october", "01"},
		{"january", "04"},
		{"june", "09"},
		{"september", "12"},
	}
	for _, tt := range tests {
		got, ok := MonthCode(tt.word)
		if !ok || got != tt.want {
			t.Errorf("MonthCode(%q) = %q, %v, want %q", tt.word, got, ok, tt.want)
		}
	}
	if _, ok := MonthCode("smarch"); ok {
		t.Error("invalid month should not resolve")
	}
}
