package model

import (
	"strings"

	"golang.org/x/text/cases"
)

var keyFolder = cases.Fold()

// normalizeKey produces the canonical lookup key for contact names and note
// titles: leading/trailing whitespace removed, then Unicode case folding.
//
// Every collection insert and lookup goes through this single function, which
// is what guarantees "one logical key, one entry".
func normalizeKey(s string) string {
	return keyFolder.String(strings.TrimSpace(s))
}
