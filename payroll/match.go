/*
match.go - Fuzzy matching of event titles to roster client names

PURPOSE:
  Calendar titles are free text: "Σταυρούλα Παπαδοπούλου - session",
  "παπαδοπουλου συνεδρια", "Κατια follow-up". The matcher maps a title to
  the clients it mentions using a tiered heuristic that maximizes recall
  on partial or reordered names while keeping word-boundary checks on
  short tokens to avoid false positives.

MATCHING TIERS (first hit per client wins, no further tiers run):
  1. Full normalized name is a substring of the title
  2. Single-token names: the token is a substring (then stop either way)
  3. Reversed "<surname> <firstname>" is a substring
  4. Surname alone as a whole word (length >= SurnameMinLen)
  5. First name alone as a whole word (length >= FirstNameMinLen)
  6. Hyphen-compound names: any hyphen part as a substring of the
     lowercased (not accent-folded) title

WORD BOUNDARIES:
  Go's regexp \b is ASCII-only and never fires between two Greek
  letters, so whole-word checks tokenize the title on non-letter,
  non-digit runes instead of using a regex.

AMBIGUITY:
  More than one client matching the same title is legal; callers use the
  first match (roster order) and surface the rest as a warning. Matching
  never fails: a blank title simply matches nothing.
*/
package payroll

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultNameMinLen is the minimum rune length for surname-only and
// first-name-only whole-word matches. Shorter tokens ("Αννα" passes,
// "Ελα" does not) are too ambiguous to match on their own.
const DefaultNameMinLen = 4

// Matcher maps event titles to client names.
// The zero value is not useful; use NewMatcher.
type Matcher struct {
	// SpecialKeywords short-circuit client matching: a title containing
	// one (case- and accent-insensitively) matches that keyword alone.
	SpecialKeywords []string

	SurnameMinLen   int
	FirstNameMinLen int
}

// NewMatcher returns a Matcher with default thresholds.
func NewMatcher(specialKeywords ...string) Matcher {
	return Matcher{
		SpecialKeywords: specialKeywords,
		SurnameMinLen:   DefaultNameMinLen,
		FirstNameMinLen: DefaultNameMinLen,
	}
}

// Match returns the client names matching title, in clientNames order.
// Empty result means unmatched. A special keyword hit returns that
// keyword as the sole element.
func (m Matcher) Match(title string, clientNames []string) []string {
	if strings.TrimSpace(title) == "" {
		return nil
	}

	titleNorm := Normalize(title)
	// Hyphen parts compare against the lowercased title without accent
	// folding; compound names are recorded accent-exact in the roster.
	titleLower := strings.ToLower(strings.TrimSpace(title))

	for _, keyword := range m.SpecialKeywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(titleNorm, Normalize(keyword)) {
			return []string{keyword}
		}
	}

	var matches []string
	for _, clientName := range clientNames {
		if strings.TrimSpace(clientName) == "" {
			continue
		}

		nameNorm := Normalize(clientName)
		parts := strings.Fields(nameNorm)

		if strings.Contains(titleNorm, nameNorm) {
			matches = append(matches, clientName)
			continue
		}

		if len(parts) < 2 {
			if strings.Contains(titleNorm, parts[0]) {
				matches = append(matches, clientName)
			}
			continue
		}

		first, last := parts[0], parts[len(parts)-1]

		if strings.Contains(titleNorm, last+" "+first) {
			matches = append(matches, clientName)
			continue
		}

		if utf8.RuneCountInString(last) >= m.SurnameMinLen && containsWord(titleNorm, last) {
			matches = append(matches, clientName)
			continue
		}

		if utf8.RuneCountInString(first) >= m.FirstNameMinLen && containsWord(titleNorm, first) {
			matches = append(matches, clientName)
			continue
		}

		if strings.Contains(clientName, "-") {
			for _, part := range strings.Split(clientName, "-") {
				part = strings.ToLower(strings.TrimSpace(part))
				if part != "" && strings.Contains(titleLower, part) {
					matches = append(matches, clientName)
					break
				}
			}
		}
	}

	return matches
}

// containsWord reports whether word appears in text as a whole word,
// with words delimited by any non-letter, non-digit rune.
func containsWord(text, word string) bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, f := range fields {
		if f == word {
			return true
		}
	}
	return false
}
