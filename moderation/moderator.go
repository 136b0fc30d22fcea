package moderation

import (
	"log/slog"
	"slices"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// DefaultDenylist markup that must never reach the catalog through titles or descriptions.
// Matching is a case-insensitive substring search, this is sanitization and not an XSS defense.
var DefaultDenylist = []string{"<script", "<iframe", "<object", "<embed"}

const censoredChar = '*'

type Moderator struct {
	log     *slog.Logger
	matcher *goahocorasick.Machine
}

// NewModerator builds the Aho-Corasick automaton over the lower-cased denylist.
func NewModerator(denylist []string, log *slog.Logger) (*Moderator, error) {
	words := make([]string, 0, len(denylist))
	for _, word := range denylist {
		if strings.TrimSpace(word) == "" {
			continue
		}
		words = append(words, strings.ToLower(word))
	}
	// the double-array trie expects sorted unique keys
	slices.Sort(words)
	words = slices.Compact(words)
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		patterns = append(patterns, []rune(word))
	}
	m := &Moderator{log: log}
	if len(patterns) == 0 {
		return m, nil
	}
	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	m.matcher = machine
	return m, nil
}

// Contains reports whether text holds at least one denylisted pattern.
func (m *Moderator) Contains(text string) bool {
	if m.matcher == nil || text == "" {
		return false
	}
	return len(m.matcher.MultiPatternSearch(lowerRunes(text), true)) > 0
}

// Matches returns every denylisted pattern found in text, in order of appearance.
func (m *Moderator) Matches(text string) []string {
	if m.matcher == nil || text == "" {
		return nil
	}
	terms := m.matcher.MultiPatternSearch(lowerRunes(text), false)
	words := make([]string, 0, len(terms))
	for _, term := range terms {
		words = append(words, string(term.Word))
	}
	return words
}

// Censor masks matched spans so rejected text can be logged.
func (m *Moderator) Censor(text string) string {
	if m.matcher == nil || text == "" {
		return text
	}
	runes := []rune(text)
	terms := m.matcher.MultiPatternSearch(lowerRunes(text), false)
	for _, term := range terms {
		end := term.Pos + len(term.Word)
		if term.Pos < 0 || end > len(runes) {
			continue
		}
		for i := term.Pos; i < end; i++ {
			runes[i] = censoredChar
		}
	}
	if len(terms) > 0 {
		m.log.Debug("Censored text", "matches", len(terms))
	}
	return string(runes)
}

// lowerRunes keeps one rune per input rune so positions map back to the original text.
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}
