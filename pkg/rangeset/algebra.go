package rangeset

// regionOp decides membership of a region in the result of a merge, given
// membership in each operand.
type regionOp func(a, b bool) bool

func opAnd(a, b bool) bool { return a && b }
func opXor(a, b bool) bool { return a != b }

// combine merges two interior boundary sequences. Membership in an
// operand toggles at each of its boundaries; a boundary is emitted into
// the result exactly where op changes value, so the output is the minimal
// canonical encoding. It returns the new bookended buffer and whether 0
// is a member of the result. Runs in O(len(a) + len(b)).
func combine(a []uint64, inA bool, b []uint64, inB bool, op regionOp) ([]uint64, bool) {
	out := make([]uint64, 1, len(a)+len(b)+2)
	cur := op(inA, inB)
	hasZero := cur
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var u uint64
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			u, inA, i = a[i], !inA, i+1
		case i == len(a) || b[j] < a[i]:
			u, inB, j = b[j], !inB, j+1
		default:
			u, inA, inB, i, j = a[i], !inA, !inB, i+1, j+1
		}
		if next := op(inA, inB); next != cur {
			out = append(out, u)
			cur = next
		}
	}
	return append(out, 0), hasZero
}

// anyRegion reports whether op holds on any region induced by the merged
// boundary sequences. Interior boundaries are non-zero and strictly
// increasing, so every region is non-empty and the walk may return at the
// first hit.
func anyRegion(a []uint64, inA bool, b []uint64, inB bool, op regionOp) bool {
	if op(inA, inB) {
		return true
	}
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			inA, i = !inA, i+1
		case i == len(a) || b[j] < a[i]:
			inB, j = !inB, j+1
		default:
			inA, inB, i, j = !inA, !inB, i+1, j+1
		}
		if op(inA, inB) {
			return true
		}
	}
	return false
}

// Complement replaces the set with its complement in [0, 2^64). It runs
// in constant time: the buffer already encodes both the set and its
// complement, so only the phase bit changes.
func (s *RangeSet) Complement() {
	s.hasZero = !s.hasZero
}

// Complemented returns a complemented copy of the set.
func (s *RangeSet) Complemented() *RangeSet {
	r := s.Clone()
	r.Complement()
	return r
}

// Intersection returns the intersection of s and o as a new set. It is
// the merge primitive the other algebra operations are built on, and
// runs in O(N+M) in the operands' range counts.
func (s *RangeSet) Intersection(o *RangeSet) *RangeSet {
	nb, hz := combine(s.interior(), s.hasZero, o.interior(), o.hasZero, opAnd)
	return &RangeSet{bounds: nb, hasZero: hz}
}

// Union returns the union of s and o as a new set, computed as
// ¬(¬s ∩ ¬o); complement is a flag flip, so this is one merge pass.
func (s *RangeSet) Union(o *RangeSet) *RangeSet {
	nb, hz := combine(s.interior(), !s.hasZero, o.interior(), !o.hasZero, opAnd)
	return &RangeSet{bounds: nb, hasZero: !hz}
}

// Difference returns s ∖ o as a new set, computed as s ∩ ¬o.
func (s *RangeSet) Difference(o *RangeSet) *RangeSet {
	nb, hz := combine(s.interior(), s.hasZero, o.interior(), !o.hasZero, opAnd)
	return &RangeSet{bounds: nb, hasZero: hz}
}

// SymmetricDifference returns the symmetric difference of s and o as a
// new set, emitted by the same merge pass with an exactly-one-operand
// predicate.
func (s *RangeSet) SymmetricDifference(o *RangeSet) *RangeSet {
	nb, hz := combine(s.interior(), s.hasZero, o.interior(), o.hasZero, opXor)
	return &RangeSet{bounds: nb, hasZero: hz}
}

// IntersectWith assigns s ∩ o to s. The result is computed into a fresh
// buffer and then installed, so s is unchanged if the computation fails.
func (s *RangeSet) IntersectWith(o *RangeSet) {
	if s == o {
		return
	}
	*s = *s.Intersection(o)
}

// UnionWith assigns s ∪ o to s.
func (s *RangeSet) UnionWith(o *RangeSet) {
	if s == o {
		return
	}
	*s = *s.Union(o)
}

// DifferenceWith assigns s ∖ o to s.
func (s *RangeSet) DifferenceWith(o *RangeSet) {
	if s == o {
		s.Clear()
		return
	}
	*s = *s.Difference(o)
}

// SymmetricDifferenceWith assigns the symmetric difference of s and o
// to s.
func (s *RangeSet) SymmetricDifferenceWith(o *RangeSet) {
	if s == o {
		s.Clear()
		return
	}
	*s = *s.SymmetricDifference(o)
}

// Intersects reports whether the set and [first, last) share a value.
func (s *RangeSet) Intersects(first, last uint64) bool {
	in, hz := rangeBounds(first, last)
	return anyRegion(s.interior(), s.hasZero, in, hz, opAnd)
}

// IntersectsSet reports whether s and o share a value.
func (s *RangeSet) IntersectsSet(o *RangeSet) bool {
	return anyRegion(s.interior(), s.hasZero, o.interior(), o.hasZero, opAnd)
}

// Contains reports whether every integer in [first, last) is a member.
func (s *RangeSet) Contains(first, last uint64) bool {
	in, hz := rangeBounds(first, last)
	return !anyRegion(in, hz, s.interior(), !s.hasZero, opAnd)
}

// ContainsSet reports whether every member of o is a member of s.
func (s *RangeSet) ContainsSet(o *RangeSet) bool {
	return !anyRegion(o.interior(), o.hasZero, s.interior(), !s.hasZero, opAnd)
}

// IsWithin reports whether every member of the set is in [first, last).
func (s *RangeSet) IsWithin(first, last uint64) bool {
	in, hz := rangeBounds(first, last)
	return !anyRegion(s.interior(), s.hasZero, in, !hz, opAnd)
}

// IsWithinSet reports whether every member of s is a member of o.
func (s *RangeSet) IsWithinSet(o *RangeSet) bool {
	return o.ContainsSet(s)
}

// IsDisjointFrom reports whether the set and [first, last) share no
// value.
func (s *RangeSet) IsDisjointFrom(first, last uint64) bool {
	return !s.Intersects(first, last)
}

// IsDisjointFromSet reports whether s and o share no value.
func (s *RangeSet) IsDisjointFromSet(o *RangeSet) bool {
	return !s.IntersectsSet(o)
}
