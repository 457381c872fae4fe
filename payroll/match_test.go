package payroll_test

import (
	"reflect"
	"testing"

	"github.com/fkcoding/payroll-engine/payroll"
)

func match(title string, names ...string) []string {
	return payroll.NewMatcher().Match(title, names)
}

func TestMatch_FullNameSubstring(t *testing.T) {
	// GIVEN: A title containing the full roster name, accents intact
	// WHEN: Matching against the roster
	// THEN: The client matches via the full-name substring tier

	got := match("Σταυρούλα Παπαδοπούλου - session", "Σταυρούλα Παπαδοπούλου")
	want := []string{"Σταυρούλα Παπαδοπούλου"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMatch_FullNameSubstring_AccentMismatch(t *testing.T) {
	// Title typed without accents must still match the accented roster name.
	got := match("σταυρουλα παπαδοπουλου 18:00", "Σταυρούλα Παπαδοπούλου")
	if len(got) != 1 {
		t.Fatalf("expected one match, got %v", got)
	}
}

func TestMatch_ReversedName(t *testing.T) {
	// GIVEN: A calendar using "Surname Firstname" order
	// THEN: The reversed-name tier matches

	got := match("παπαδοπουλου Σταυρούλα", "Σταυρούλα Παπαδοπούλου")
	if len(got) != 1 || got[0] != "Σταυρούλα Παπαδοπούλου" {
		t.Errorf("expected reversed-name match, got %v", got)
	}
}

func TestMatch_NoFalsePositive(t *testing.T) {
	// Neither "smith" nor "robert" appears; "Bob" must not match.
	got := match("Meeting with Bob", "Robert Smith")
	if len(got) != 0 {
		t.Errorf("expected no match, got %v", got)
	}
}

func TestMatch_SurnameWordBoundary(t *testing.T) {
	// Surname alone as a whole word matches; embedded in another word it
	// must not.
	if got := match("η παπαδοπουλου στις 5", "Σταυρούλα Παπαδοπούλου"); len(got) != 1 {
		t.Errorf("whole-word surname should match, got %v", got)
	}
	if got := match("παπαδοπουλουδης", "Σταυρούλα Παπαδοπούλου"); len(got) != 0 {
		t.Errorf("embedded surname should not match, got %v", got)
	}
}

func TestMatch_FirstNameThreshold(t *testing.T) {
	// GIVEN: A three-letter first name
	// THEN: The first-name-only tier refuses it (too ambiguous),
	//       but a four-letter name passes

	if got := match("Εύα session", "Εύα Κωνσταντίνου"); len(got) != 0 {
		t.Errorf("three-letter first name alone should not match, got %v", got)
	}
	if got := match("Μαρία session", "Μαρία Κωνσταντίνου"); len(got) != 1 {
		t.Errorf("four-letter-plus first name should match, got %v", got)
	}
}

func TestMatch_SingleTokenName(t *testing.T) {
	got := match("ραντεβου Κατερίνα 17:00", "Κατερίνα")
	if len(got) != 1 {
		t.Errorf("single-token name substring should match, got %v", got)
	}
}

func TestMatch_HyphenCompound(t *testing.T) {
	// Hyphen parts compare against the lowercased, unfolded title.
	got := match("Μαρία-Ελένη θεραπεία", "Μαρία-Ελένη Ιωάννου")
	if len(got) != 1 {
		t.Errorf("hyphen part should match, got %v", got)
	}
}

func TestMatch_SpecialKeywordShortCircuits(t *testing.T) {
	// GIVEN: A supervision keyword in the title and a client who would
	//        also match
	// THEN: Only the keyword is returned

	m := payroll.NewMatcher(payroll.DefaultSupervisionKeywords...)
	got := m.Match("Εποπτεία με Μαρία Κωνσταντίνου", []string{"Μαρία Κωνσταντίνου"})
	want := []string{"Εποπτεία"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMatch_SpecialKeywordAccentInsensitive(t *testing.T) {
	// The accented keyword must hit an unaccented title.
	m := payroll.NewMatcher("Εποπτεία")
	if got := m.Match("εποπτεια ομαδας", nil); len(got) != 1 {
		t.Errorf("expected keyword match, got %v", got)
	}
}

func TestMatch_BlankInputs(t *testing.T) {
	if got := match("   ", "Μαρία Κωνσταντίνου"); got != nil {
		t.Errorf("blank title should match nothing, got %v", got)
	}
	// Blank roster names are skipped, not matched.
	if got := match("anything at all", "", "  "); len(got) != 0 {
		t.Errorf("blank names should be skipped, got %v", got)
	}
}

func TestMatch_RosterOrderAndUniqueness(t *testing.T) {
	// GIVEN: Two sisters sharing a surname
	// WHEN: The title carries only the surname
	// THEN: Both match, in roster order, each exactly once

	got := match("παπαδοπουλου 12:00",
		"Ελένη Παπαδοπούλου", "Σταυρούλα Παπαδοπούλου")
	want := []string{"Ελένη Παπαδοπούλου", "Σταυρούλα Παπαδοπούλου"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMatch_ConfigurableThresholds(t *testing.T) {
	m := payroll.NewMatcher()
	m.FirstNameMinLen = 5

	// "Νικη" (4 runes) passes the default but not the raised threshold.
	if got := m.Match("Νίκη θεραπεία", []string{"Νίκη Αλεξίου"}); len(got) != 0 {
		t.Errorf("raised threshold should reject 4-rune first name, got %v", got)
	}
}
