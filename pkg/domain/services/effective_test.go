package services

import (
	"testing"
	"time"
)

type window struct {
	name string
	from time.Time
	to   time.Time
}

func (w window) Window() (time.Time, time.Time) { return w.from, w.to }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIndex_At(t *testing.T) {
	ix := NewIndex([]window{
		{name: "q1", from: day("2025-01-01"), to: day("2025-04-01")},
		{name: "q2", from: day("2025-04-01"), to: day("2025-07-01")},
		{name: "open", from: day("2025-06-01")},
	})

	tests := []struct {
		on   string
		want []string
	}{
		{"2024-12-31", nil},
		{"2025-01-01", []string{"q1"}},
		{"2025-03-31", []string{"q1"}},
		{"2025-04-01", []string{"q2"}}, // half-open: q1 excludes its end date
		{"2025-06-15", []string{"q2", "open"}},
		{"2025-08-01", []string{"open"}},
	}

	for _, tt := range tests {
		hits := ix.At(day(tt.on))
		if len(hits) != len(tt.want) {
			t.Errorf("At(%s): got %d records, want %d", tt.on, len(hits), len(tt.want))
			continue
		}
		for i, h := range hits {
			if h.name != tt.want[i] {
				t.Errorf("At(%s)[%d] = %s, want %s", tt.on, i, h.name, tt.want[i])
			}
		}
	}
}

func TestIndex_Overlaps(t *testing.T) {
	ix := NewIndex([]window{
		{name: "a", from: day("2025-01-01"), to: day("2025-03-01")},
		{name: "b", from: day("2025-02-01"), to: day("2025-05-01")},
		{name: "c", from: day("2025-03-01"), to: day("2025-04-01")},
	})

	pairs := ix.Overlaps()
	if len(pairs) != 2 {
		t.Fatalf("expected 2 overlapping pairs, got %d", len(pairs))
	}
	if pairs[0][0].name != "a" || pairs[0][1].name != "b" {
		t.Errorf("unexpected first overlap: %s/%s", pairs[0][0].name, pairs[0][1].name)
	}
	if pairs[1][0].name != "b" || pairs[1][1].name != "c" {
		t.Errorf("unexpected second overlap: %s/%s", pairs[1][0].name, pairs[1][1].name)
	}
}

func TestResolveLayered(t *testing.T) {
	override := func(k string) (int, bool) {
		if k == "special" {
			return 10, true
		}
		return 0, false
	}
	baseline := func(k string) (int, bool) { return 30, true }

	if v, ok := ResolveLayered("special", override, baseline); !ok || v != 10 {
		t.Errorf("override layer should win: got %d ok=%v", v, ok)
	}
	if v, ok := ResolveLayered("normal", override, baseline); !ok || v != 30 {
		t.Errorf("baseline layer should answer: got %d ok=%v", v, ok)
	}
	if _, ok := ResolveLayered("x", override); ok {
		t.Error("no layer should answer")
	}
}
