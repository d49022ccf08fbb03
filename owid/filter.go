// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package owid

import (
	"strings"
	"time"
)

// Filter returns a new table holding rows whose location matches one of
// the supplied countries (case-insensitively) and whose date falls in
// [start, end]. An empty country list matches all locations; a zero
// start or end leaves that bound open. Row data is shared, not copied.
func (t *Table) Filter(countries []string, start, end time.Time) *Table {
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		set[strings.ToLower(c)] = struct{}{}
	}

	ft := &Table{Columns: t.Columns}
	for i := range t.Rows {
		r := &t.Rows[i]
		if len(set) > 0 {
			if _, ok := set[strings.ToLower(r.Location)]; !ok {
				continue
			}
		}
		if !start.IsZero() && r.Date.Before(start) {
			continue
		}
		if !end.IsZero() && r.Date.After(end) {
			continue
		}
		ft.Rows = append(ft.Rows, *r)
	}
	return ft
}
