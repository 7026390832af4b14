package person

import "sort"

// Stats summarizes a column of generated identifiers.
type Stats struct {
	Total           int
	Distinct        int
	Duplicates      int
	Errors          int
	DuplicateGroups []DuplicateGroup
}

// DuplicateGroup is one identifier shared by more than one row.
type DuplicateGroup struct {
	ID   string
	Rows []int
}

// Summarize groups ids by value. ErrorMarker entries are counted as errors
// and never as identifiers or duplicates.
func Summarize(ids []string) Stats {
	stats := Stats{Total: len(ids)}
	groups := make(map[string][]int)

	for i, id := range ids {
		if id == ErrorMarker {
			stats.Errors++
			continue
		}
		groups[id] = append(groups[id], i)
	}

	stats.Distinct = len(groups)
	for id, rows := range groups {
		if len(rows) < 2 {
			continue
		}
		stats.Duplicates += len(rows)
		stats.DuplicateGroups = append(stats.DuplicateGroups, DuplicateGroup{ID: id, Rows: rows})
	}

	sort.Slice(stats.DuplicateGroups, func(i, j int) bool {
		return stats.DuplicateGroups[i].ID < stats.DuplicateGroups[j].ID
	})

	return stats
}

// HasDuplicates reports whether at least two rows share an identifier.
func (s Stats) HasDuplicates() bool {
	return s.Duplicates > 0
}
