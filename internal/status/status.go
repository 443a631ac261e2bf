// Package status derives a task's lifecycle state. It has two layers:
// canonicalization of the manually-entered status label, and the final
// status computation that combines the canonical label with date-driven
// urgency as of a single "today".
package status

import "strings"

// Canonical status labels.
const (
	Overdue       = "Overdue"
	DueSoon       = "Due Soon"
	UnderProgress = "Under Progress"
	NotDone       = "Not Done"
	Rescheduled   = "Rescheduled"
	Blocked       = "Blocked"
	Done          = "Done"
)

// Vocabulary is the closed set of derived statuses, in display order.
// The engine never emits a value outside it and pivots order their
// status axis by it, not alphabetically.
var Vocabulary = []string{Overdue, DueSoon, UnderProgress, NotDone, Rescheduled, Blocked, Done}

// synonyms maps lowercased free-text labels onto canonical ones.
var synonyms = map[string]string{
	"done":           Done,
	"completed":      Done,
	"finished":       Done,
	"under progress": UnderProgress,
	"in progress":    UnderProgress,
	"progress":       UnderProgress,
	"not done":       NotDone,
	"todo":           NotDone,
	"pending":        NotDone,
	"rescheduled":    Rescheduled,
	"deferred":       Rescheduled,
	"blocked":        Blocked,
	"on hold":        Blocked,
}

// Canon maps a free-text status to its canonical label. Unrecognized
// non-empty input passes through unchanged: it is treated as an
// already-canonical label we simply don't know about, which makes Canon
// idempotent. Empty input stays empty ("no status").
func Canon(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if canon, ok := synonyms[strings.ToLower(t)]; ok {
		return canon
	}
	return t
}

// Rank returns a status's position in the display vocabulary.
// Unrecognized passthrough statuses rank after the whole vocabulary.
func Rank(s string) int {
	for i, v := range Vocabulary {
		if v == s {
			return i
		}
	}
	return len(Vocabulary)
}
