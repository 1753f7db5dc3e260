package lifecycle

import "sort"

// Summary aggregates a snapshot for supervisors: how many nodes sit in
// each state and which ones are not yet terminal.
type Summary struct {
	Total      int
	Counts     map[Status]int
	Incomplete []string
}

// Done reports whether every node reached a terminal state.
func (s Summary) Done() bool {
	return len(s.Incomplete) == 0
}

// Summarize folds a snapshot into per-state counts. Incomplete node paths
// are sorted for stable output.
func Summarize(records map[string]Record) Summary {
	summary := Summary{
		Total:  len(records),
		Counts: make(map[Status]int),
	}
	for path, rec := range records {
		summary.Counts[rec.Status]++
		if !rec.Status.Terminal() {
			summary.Incomplete = append(summary.Incomplete, path)
		}
	}
	sort.Strings(summary.Incomplete)
	return summary
}
