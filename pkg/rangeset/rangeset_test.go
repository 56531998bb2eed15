package rangeset

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestEmptyAndFull(t *testing.T) {
	s := New()
	assert.True(t, s.IsEmpty())
	assert.False(t, s.IsFull())
	assert.Equal(t, 0, s.NumRanges())
	assert.Equal(t, uint64(0), s.Cardinality())
	assert.True(t, s.IsValid())
	assert.Equal(t, "{}", s.String())

	f := Full()
	assert.False(t, f.IsEmpty())
	assert.True(t, f.IsFull())
	assert.Equal(t, 1, f.NumRanges())
	// a full set holds 2^64 integers, which is 0 modulo 2^64
	assert.Equal(t, uint64(0), f.Cardinality())
	assert.True(t, f.IsValid())
	assert.Equal(t, "{[0, 0)}", f.String())
}

func TestZeroValue(t *testing.T) {
	var s RangeSet
	assert.True(t, s.IsEmpty())
	assert.True(t, s.Equal(New()))
	s.Complement()
	assert.True(t, s.IsFull())
	s.Complement()
	s.Add(42)
	assert.True(t, s.Has(42))
	assert.True(t, s.IsValid())
}

func TestConstruction(t *testing.T) {
	cases := map[string]struct {
		set  *RangeSet
		want []Range
	}{
		"Single": {
			set:  Of(3),
			want: []Range{{3, 4}},
		},
		"Consecutive": {
			set:  Of(1, 2, 3),
			want: []Range{{1, 4}},
		},
		"Unordered": {
			set:  Of(9, 1, 5, 2),
			want: []Range{{1, 3}, {5, 6}, {9, 10}},
		},
		"Interval": {
			set:  OfRange(3, 8),
			want: []Range{{3, 8}},
		},
		"Wraparound": {
			set:  OfRange(30, 5),
			want: []Range{{0, 5}, {30, 0}},
		},
		"Ranges": {
			set:  OfRanges(Range{0, 3}, Range{5, 8}),
			want: []Range{{0, 3}, {5, 8}},
		},
		"FullInterval": {
			set:  OfRange(7, 7),
			want: []Range{{0, 0}},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if !tc.set.IsValid() {
				t.Fatalf("%s: invalid encoding for %s", name, tc.set)
			}
			got := tc.set.AppendRanges(nil)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestEqualIsLogical(t *testing.T) {
	// sets built along different paths share one canonical encoding
	assert.True(t, Of(1, 2, 3).Equal(OfRange(1, 4)))
	assert.True(t, OfRange(7, 7).Equal(Full()))
	assert.True(t, Of(5).Equal(OfRange(5, 6)))
	assert.False(t, OfRange(1, 4).Equal(OfRange(1, 5)))
	assert.False(t, New().Equal(Full()))

	s := OfRange(3, 8)
	assert.True(t, s.Equal(s.Clone()))
}

func TestMembership(t *testing.T) {
	s := OfRanges(Range{0, 3}, Range{5, 8})
	assert.Equal(t, 2, s.NumRanges())
	assert.Equal(t, uint64(6), s.Cardinality())
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(4))
	assert.True(t, s.Intersects(7, 10))

	w := OfRange(5, 3)
	for _, u := range []uint64{5, 100, math.MaxUint64, 0, 2} {
		if !w.Has(u) {
			t.Errorf("expecting %d in %s", u, w)
		}
	}
	for _, u := range []uint64{3, 4} {
		if w.Has(u) {
			t.Errorf("not expecting %d in %s", u, w)
		}
	}
}

func TestMaxValueOnly(t *testing.T) {
	s := OfRange(math.MaxUint64, 0)
	assert.Equal(t, uint64(1), s.Cardinality())
	assert.True(t, s.Has(math.MaxUint64))
	assert.False(t, s.Has(0))
	assert.True(t, s.IsValid())
}

func TestCardinality(t *testing.T) {
	assert.Equal(t, uint64(10), OfRange(0, 10).Cardinality())

	s := New()
	s.Fill()
	assert.Equal(t, uint64(0), s.Cardinality())
	assert.False(t, s.IsEmpty())
}

func TestClearFill(t *testing.T) {
	s := OfRanges(Range{1, 3}, Range{7, 9})
	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.True(t, s.Equal(New()))
	s.Fill()
	assert.True(t, s.IsFull())
	assert.True(t, s.Equal(Full()))
}

func TestString(t *testing.T) {
	assert.Equal(t, "{[1, 3) [7, 9)}", OfRanges(Range{1, 3}, Range{7, 9}).String())
}

func TestMaxRanges(t *testing.T) {
	s := New()
	if s.MaxRanges() <= 0 {
		t.Errorf("expecting a positive range capacity, got %d", s.MaxRanges())
	}
}

func TestRange(t *testing.T) {
	cases := map[string]struct {
		r        Range
		full     bool
		wraps    bool
		len      uint64
		contains []uint64
		excludes []uint64
	}{
		"Normal": {
			r:        Range{3, 8},
			len:      5,
			contains: []uint64{3, 7},
			excludes: []uint64{2, 8},
		},
		"Full": {
			r:        Range{5, 5},
			full:     true,
			wraps:    true,
			contains: []uint64{0, 5, math.MaxUint64},
		},
		"WrapToTop": {
			r:        Range{math.MaxUint64, 0},
			wraps:    true,
			len:      1,
			contains: []uint64{math.MaxUint64},
			excludes: []uint64{0, 1},
		},
		"WrapAround": {
			r:        Range{30, 5},
			wraps:    true,
			len:      5 - 30 + math.MaxUint64 + 1,
			contains: []uint64{30, math.MaxUint64, 0, 4},
			excludes: []uint64{5, 29},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.full, tc.r.IsFull())
			assert.Equal(t, tc.wraps, tc.r.Wraps())
			assert.Equal(t, tc.len, tc.r.Len())
			for _, u := range tc.contains {
				if !tc.r.Contains(u) {
					t.Errorf("%s: expecting %d in %s", name, u, tc.r)
				}
			}
			for _, u := range tc.excludes {
				if tc.r.Contains(u) {
					t.Errorf("%s: not expecting %d in %s", name, u, tc.r)
				}
			}
		})
	}
}
