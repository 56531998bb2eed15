package rangeset

// rangeBounds returns the interior boundaries and zero-membership of the
// single-interval set denoted by [first, last).
func rangeBounds(first, last uint64) ([]uint64, bool) {
	switch {
	case first == last:
		return nil, true
	case first < last:
		if first == 0 {
			return []uint64{last}, true
		}
		return []uint64{first, last}, false
	case last == 0:
		// [first, 2^64)
		return []uint64{first}, false
	default:
		// wraps: [0, last) ∪ [first, 2^64)
		return []uint64{last, first}, true
	}
}

// bookend wraps an interior boundary sequence in the two 0 sentinels.
func bookend(interior []uint64) []uint64 {
	b := make([]uint64, 0, len(interior)+2)
	b = append(b, 0)
	b = append(b, interior...)
	return append(b, 0)
}

// Add inserts the single integer u.
func (s *RangeSet) Add(u uint64) {
	s.AddRange(u, u+1)
}

// AddRange inserts the half-open interval [first, last), merging it with
// any overlapping or adjacent ranges. Insertion runs in amortized
// constant time when the interval extends or follows the current top
// range, which is the common case when ranges arrive in increasing
// order; otherwise it is O(N) in the number of ranges. The general case
// builds its result in a fresh buffer, so a set observed after a failed
// allocation is unchanged.
func (s *RangeSet) AddRange(first, last uint64) {
	if first == last {
		s.Fill()
		return
	}
	if s.IsEmpty() {
		in, hz := rangeBounds(first, last)
		s.bounds, s.hasZero = bookend(in), hz
		return
	}
	b := s.buf()
	n := len(b)
	if v := s.pairs(); v[len(v)-1] != 0 {
		// The set's top range ends below the top of the domain, and its
		// end boundary sits just before the trailing sentinel.
		top := v[len(v)-1]
		start := v[len(v)-2]
		switch {
		case first > top && first < last:
			s.bounds = append(b[:n-1], first, last, 0)
			return
		case first > top && last == 0:
			s.bounds = append(b[:n-1], first, 0)
			return
		case first >= start && first <= top && last == 0:
			// extend the top range through the end of the domain
			s.bounds = append(b[:n-2], 0)
			return
		case first >= start && first <= top && first < last:
			if last > top {
				b[n-2] = last
			}
			return
		}
	}
	// General case: union with the single-interval set, computed as
	// ¬(¬s ∩ ¬[first, last)).
	in, hz := rangeBounds(first, last)
	nb, nhz := combine(b[1:n-1], !s.hasZero, in, !hz, opAnd)
	s.bounds, s.hasZero = nb, !nhz
}

// Delete removes the single integer u.
func (s *RangeSet) Delete(u uint64) {
	s.DeleteRange(u, u+1)
}

// DeleteRange removes the half-open interval [first, last), splitting
// any range it lands inside of. Removal is O(N) in the number of ranges
// and builds its result in a fresh buffer.
func (s *RangeSet) DeleteRange(first, last uint64) {
	if first == last {
		s.Clear()
		return
	}
	in, hz := rangeBounds(first, last)
	nb, nhz := combine(s.interior(), s.hasZero, in, !hz, opAnd)
	s.bounds, s.hasZero = nb, nhz
}
