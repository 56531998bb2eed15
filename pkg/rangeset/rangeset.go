// Package rangeset provides a set type over the full range of unsigned
// 64 bit integers, stored as a sorted sequence of disjoint, non-empty,
// half-open ranges. It is built for workloads where long runs of
// consecutive values are common, such as the pixel indexes produced by a
// hierarchical pixelization of the sphere, where storing every index
// individually would be prohibitively expensive.
//
// Internally the range boundaries live in a []uint64 whose first and last
// elements are always 0, regardless of whether 0 or the maximum value
// belongs to the set. A set containing the single integer 3 is stored as
//
//	[0, 3, 4, 0]
//
// Reading pairs starting at index 1 yields [3, 4), the contents of the
// set. Reading pairs starting at index 0 yields [0, 3) and [4, 0), the
// contents of its complement. A single phase bit selects which of the two
// readings is the set, so complementing is a constant-time flag flip and
// union and difference reduce to intersection via A ∪ B = ¬(¬A ∩ ¬B) and
// A ∖ B = A ∩ ¬B.
//
// Arithmetic on range endpoints is modular: an end point of 0 means the
// range runs through the maximum representable value, and a range with
// First == Last denotes the entire domain. Every (first, last) pair is a
// legal interval; a pair with first > last wraps around.
package rangeset

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
)

// Range is a half-open interval [First, Last) of unsigned 64 bit
// integers. First == Last denotes the full domain; Last == 0 with a
// non-zero First, or First > Last, wraps through the maximum value.
type Range struct {
	First uint64
	Last  uint64
}

// IsFull reports whether the range covers the entire domain.
func (r Range) IsFull() bool { return r.First == r.Last }

// Wraps reports whether the range contains the maximum value.
func (r Range) Wraps() bool { return r.First >= r.Last }

// Len returns the number of integers in the range, modulo 2^64.
// It returns 0 for the full domain.
func (r Range) Len() uint64 { return r.Last - r.First }

// Contains reports whether u is in the range.
func (r Range) Contains(u uint64) bool {
	if r.First == r.Last {
		return true
	}
	if r.First < r.Last {
		return r.First <= u && u < r.Last
	}
	return u >= r.First || u < r.Last
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.First, r.Last)
}

// RangeSet is a set of unsigned 64 bit integers. The zero value is the
// empty set, ready for use.
//
// A RangeSet is a plain value with no internal synchronization: copies
// obtained with Clone may be used concurrently, but any concurrent
// mutation of a shared instance must be excluded by the caller.
type RangeSet struct {
	// bounds always begins and ends with a 0 sentinel; the values in
	// between are strictly increasing and non-zero.
	bounds []uint64

	// hasZero selects the phase of the pair reading: when true the
	// first logical range starts at index 0 of bounds, which is the
	// case exactly when the integer 0 is a member.
	hasZero bool
}

// emptyBounds backs the zero value. It is read-only.
var emptyBounds = []uint64{0, 0}

// New returns an empty set.
func New() *RangeSet {
	return &RangeSet{bounds: []uint64{0, 0}}
}

// Full returns a set containing every unsigned 64 bit integer.
func Full() *RangeSet {
	return &RangeSet{bounds: []uint64{0, 0}, hasZero: true}
}

// Of returns a set containing the given integers.
func Of(ids ...uint64) *RangeSet {
	s := New()
	for _, u := range ids {
		s.Add(u)
	}
	return s
}

// OfRange returns a set containing the half-open interval [first, last).
func OfRange(first, last uint64) *RangeSet {
	s := New()
	s.AddRange(first, last)
	return s
}

// OfRanges returns the union of the given ranges.
func OfRanges(rr ...Range) *RangeSet {
	s := New()
	for _, r := range rr {
		s.AddRange(r.First, r.Last)
	}
	return s
}

func (s *RangeSet) buf() []uint64 {
	if s.bounds == nil {
		return emptyBounds
	}
	return s.bounds
}

// interior returns the boundary values between the two sentinels.
func (s *RangeSet) interior() []uint64 {
	b := s.buf()
	return b[1 : len(b)-1]
}

// pairsAt returns the boundary pairs starting at offset o (0 or 1).
func pairsAt(b []uint64, o int) []uint64 {
	n := len(b)
	return b[o : n-((n&1)^o)]
}

// pairs returns the flattened (first, last) boundary pairs of the set's
// own ranges.
func (s *RangeSet) pairs() []uint64 {
	if s.hasZero {
		return pairsAt(s.buf(), 0)
	}
	return pairsAt(s.buf(), 1)
}

// cpairs returns the flattened boundary pairs of the complement's ranges.
func (s *RangeSet) cpairs() []uint64 {
	if s.hasZero {
		return pairsAt(s.buf(), 1)
	}
	return pairsAt(s.buf(), 0)
}

// Clear removes all integers from the set.
func (s *RangeSet) Clear() {
	s.bounds = []uint64{0, 0}
	s.hasZero = false
}

// Fill adds all unsigned 64 bit integers to the set.
func (s *RangeSet) Fill() {
	s.bounds = []uint64{0, 0}
	s.hasZero = true
}

// IsEmpty reports whether the set contains no integers.
func (s *RangeSet) IsEmpty() bool { return len(s.pairs()) == 0 }

// IsFull reports whether the set contains every integer in [0, 2^64).
func (s *RangeSet) IsFull() bool { return len(s.cpairs()) == 0 }

// NumRanges returns the number of disjoint ranges in the set.
func (s *RangeSet) NumRanges() int { return len(s.pairs()) / 2 }

// MaxRanges returns the largest number of ranges a set can hold. It is a
// capacity guard for the backing storage, not a limit on values.
func (s *RangeSet) MaxRanges() int { return math.MaxInt / 16 }

// Cardinality returns the number of integers in the set, modulo 2^64.
// Both the empty set and the full set report 0; callers distinguish them
// with IsEmpty.
func (s *RangeSet) Cardinality() uint64 {
	var n uint64
	v := s.pairs()
	for i := 0; i < len(v); i += 2 {
		n += v[i+1] - v[i]
	}
	return n
}

// Has reports whether u is a member of the set.
func (s *RangeSet) Has(u uint64) bool {
	in := s.interior()
	i := sort.Search(len(in), func(i int) bool { return in[i] > u })
	return (i%2 == 0) == s.hasZero
}

// Equal reports whether two sets contain the same integers. The encoding
// is canonical, so this is a buffer comparison.
func (s *RangeSet) Equal(o *RangeSet) bool {
	return s.hasZero == o.hasZero && slices.Equal(s.buf(), o.buf())
}

// Clone returns an independent copy of the set.
func (s *RangeSet) Clone() *RangeSet {
	return &RangeSet{bounds: slices.Clone(s.buf()), hasZero: s.hasZero}
}

// AppendRanges appends the set's ranges to dst and returns the result.
func (s *RangeSet) AppendRanges(dst []Range) []Range {
	v := s.pairs()
	for i := 0; i < len(v); i += 2 {
		dst = append(dst, Range{First: v[i], Last: v[i+1]})
	}
	return dst
}

// String renders the set as a list of half-open ranges, for diagnostics.
func (s *RangeSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	v := s.pairs()
	for i := 0; i < len(v); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "[%d, %d)", v[i], v[i+1])
	}
	sb.WriteByte('}')
	return sb.String()
}

// IsValid checks that the set's internal invariants hold. It is intended
// for tests; a false return means the implementation has a bug, not that
// the caller supplied bad input.
func (s *RangeSet) IsValid() bool {
	b := s.buf()
	if len(b) < 2 || b[0] != 0 || b[len(b)-1] != 0 {
		return false
	}
	in := b[1 : len(b)-1]
	for i, u := range in {
		if u == 0 {
			return false
		}
		if i > 0 && in[i-1] >= u {
			return false
		}
	}
	return true
}
