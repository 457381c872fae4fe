/*
normalize.go - Greek text canonicalization for name comparison

PURPOSE:
  Calendar titles and roster names are typed by hand, with and without
  accents. Normalize folds the accented Greek vowels so that "Άννα" and
  "αννα" compare equal.

WHY NOT UNICODE DECOMPOSITION:
  General NFD + mark stripping would also fold dialytika (ϊ -> ι), which
  changes distinct names. Only the nine tonos/dialytika-tonos vowels are
  folded, matching the comparison convention of the roster data.
*/
package payroll

import "strings"

var greekFolder = strings.NewReplacer(
	"ά", "α",
	"έ", "ε",
	"ή", "η",
	"ί", "ι",
	"ό", "ο",
	"ύ", "υ",
	"ώ", "ω",
	"ΐ", "ι",
	"ΰ", "υ",
)

// Normalize lowercases, trims, and folds accented Greek vowels.
// Pure and total: any string in, a canonical string out.
func Normalize(text string) string {
	return greekFolder.Replace(strings.TrimSpace(strings.ToLower(text)))
}
