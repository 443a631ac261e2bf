// Package pivot builds the fixed-shape count tables over an enriched
// task set. Every count is over tasks: one row, one task, no weighting.
package pivot

import (
	"sort"
	"strconv"

	"github.com/zulandar/followup/internal/pipeline"
	"github.com/zulandar/followup/internal/status"
)

// SLA state labels for the breach pivot.
const (
	SLABreach = "Breach"
	SLAOK     = "OK"
)

// CountRow is one row of a single-dimension count table.
type CountRow struct {
	Key   string
	Count int
}

// CrossTab is a two-dimensional count table: one row per key, one
// column per final status, missing combinations zero-filled.
type CrossTab struct {
	Dimension string
	Statuses  []string
	Rows      []CrossRow
}

// CrossRow holds the per-status counts for one key. Counts is parallel
// to the CrossTab's Statuses slice.
type CrossRow struct {
	Key    string
	Counts []int
	Total  int
}

// ByStatus counts tasks per final status, one row per status present,
// in vocabulary order (passthrough statuses after the vocabulary).
func ByStatus(rows []pipeline.Row) []CountRow {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.StatusFinal]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := status.Rank(keys[i]), status.Rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	out := make([]CountRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, CountRow{Key: k, Count: counts[k]})
	}
	return out
}

// BySLA counts tasks by SLA state. Both rows are always present.
func BySLA(rows []pipeline.Row) []CountRow {
	breach := 0
	for _, r := range rows {
		if r.SLABreach {
			breach++
		}
	}
	return []CountRow{
		{Key: SLABreach, Count: breach},
		{Key: SLAOK, Count: len(rows) - breach},
	}
}

// ByUnit cross-tabulates units against final statuses.
func ByUnit(rows []pipeline.Row) CrossTab {
	return crossTab(rows, "Unit", func(r pipeline.Row) string { return r.Task.Unit }, lexLess)
}

// ByWeek cross-tabulates week numbers against final statuses.
func ByWeek(rows []pipeline.Row) CrossTab {
	return crossTab(rows, "Week", func(r pipeline.Row) string {
		if r.Task.Week == nil {
			return ""
		}
		return strconv.Itoa(*r.Task.Week)
	}, numericLess)
}

// ByPriority cross-tabulates priorities against final statuses.
func ByPriority(rows []pipeline.Row) CrossTab {
	return crossTab(rows, "Priority", func(r pipeline.Row) string { return r.Task.Priority }, lexLess)
}

// ByOwner cross-tabulates owners against final statuses.
func ByOwner(rows []pipeline.Row) CrossTab {
	return crossTab(rows, "Owner", func(r pipeline.Row) string { return r.Task.Owner }, lexLess)
}

// crossTab groups tasks by key and status, then shapes the result into
// a zero-filled table. Columns are the full status vocabulary plus any
// passthrough statuses actually present.
func crossTab(rows []pipeline.Row, dim string, key func(pipeline.Row) string, less func(a, b string) bool) CrossTab {
	statuses := append([]string(nil), status.Vocabulary...)
	seen := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		seen[s] = true
	}
	var extra []string
	for _, r := range rows {
		if !seen[r.StatusFinal] {
			seen[r.StatusFinal] = true
			extra = append(extra, r.StatusFinal)
		}
	}
	sort.Strings(extra)
	statuses = append(statuses, extra...)

	col := make(map[string]int, len(statuses))
	for i, s := range statuses {
		col[s] = i
	}

	byKey := make(map[string][]int)
	var keys []string
	for _, r := range rows {
		k := key(r)
		counts, ok := byKey[k]
		if !ok {
			counts = make([]int, len(statuses))
			byKey[k] = counts
			keys = append(keys, k)
		}
		counts[col[r.StatusFinal]]++
	}

	// Empty keys sort last; otherwise dimension-specific order.
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if (a == "") != (b == "") {
			return b == ""
		}
		return less(a, b)
	})

	tab := CrossTab{Dimension: dim, Statuses: statuses}
	for _, k := range keys {
		counts := byKey[k]
		total := 0
		for _, c := range counts {
			total += c
		}
		tab.Rows = append(tab.Rows, CrossRow{Key: k, Counts: counts, Total: total})
	}
	return tab
}

func lexLess(a, b string) bool { return a < b }

// numericLess orders numeric keys by value, falling back to string
// order when either side fails to parse.
func numericLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
