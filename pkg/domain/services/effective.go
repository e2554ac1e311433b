package services

import (
	"sort"
	"time"
)

// Effective is implemented by records with an effective-dated validity window.
// A zero "to" time means the window is open-ended. Windows are half-open:
// a record is in effect on d when from <= d < to.
type Effective interface {
	Window() (from, to time.Time)
}

// Index is an interval-indexed resolver over effective-dated records, sorted
// by effective-from and binary-searchable. It is the single implementation of
// the interval-overlap lookup shared by rate cards and any other
// effective-dated table.
type Index[T Effective] struct {
	records []T // sorted by from ascending
}

// NewIndex builds an index over the given records. The input slice is not
// retained; ordering between records with equal from is preserved.
func NewIndex[T Effective](records []T) *Index[T] {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		fi, _ := sorted[i].Window()
		fj, _ := sorted[j].Window()
		return fi.Before(fj)
	})
	return &Index[T]{records: sorted}
}

// At returns every record whose window covers the given date, in
// effective-from ascending order.
func (ix *Index[T]) At(on time.Time) []T {
	// First record with from > on; everything at or past this index is
	// not yet effective.
	limit := sort.Search(len(ix.records), func(i int) bool {
		from, _ := ix.records[i].Window()
		return from.After(on)
	})

	var hits []T
	for i := 0; i < limit; i++ {
		_, to := ix.records[i].Window()
		if to.IsZero() || on.Before(to) {
			hits = append(hits, ix.records[i])
		}
	}
	return hits
}

// Len returns the number of indexed records
func (ix *Index[T]) Len() int {
	return len(ix.records)
}

// All returns the indexed records in effective-from ascending order
func (ix *Index[T]) All() []T {
	return ix.records
}

// Overlaps returns record pairs whose windows overlap. Overlap between
// records of the same key is a soft data-quality warning at load time and a
// hard ambiguity at rating time.
func (ix *Index[T]) Overlaps() [][2]T {
	var pairs [][2]T
	for i := 0; i < len(ix.records); i++ {
		_, toI := ix.records[i].Window()
		for j := i + 1; j < len(ix.records); j++ {
			fromJ, _ := ix.records[j].Window()
			if !toI.IsZero() && !fromJ.Before(toI) {
				break
			}
			pairs = append(pairs, [2]T{ix.records[i], ix.records[j]})
		}
	}
	return pairs
}
