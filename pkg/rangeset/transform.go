package rangeset

// Simplify coarsens the set by rounding each range start down to the
// nearest multiple of 2^n and each range end up. Ranges that overlap or
// touch after rounding are folded together, so the result is always a
// superset of the original: for ranges covering the pixels of a
// hierarchical sky pixelization that intersect some region, this computes
// a lower resolution representation of the coverage. Simplify(0) is the
// identity.
func (s *RangeSet) Simplify(n uint) {
	if n == 0 || s.IsEmpty() {
		return
	}
	if n >= 64 {
		s.Fill()
		return
	}
	m := uint64(1)<<n - 1
	r := New()
	v := s.pairs()
	for i := 0; i < len(v); i += 2 {
		first := v[i] &^ m
		// rounding an end past the top of the domain wraps to 0, which
		// is the encoding for "through 2^64"
		last := (v[i+1] + m) &^ m
		r.AddRange(first, last)
	}
	*s = *r
}

// Simplified returns a simplified copy of the set.
func (s *RangeSet) Simplified(n uint) *RangeSet {
	r := s.Clone()
	r.Simplify(n)
	return r
}

// Scale multiplies every range boundary by k, modulo 2^64. Scaling by
// 4 maps the pixel index ranges of a hierarchical pixelization such as
// HTM or Q3C to the next finer subdivision level. Products are reduced
// modulo 2^64 under the same rules as all other endpoint arithmetic, and
// the result is re-canonicalized, so scaling a full or wraparound set
// yields a valid set. Scale(1) is the identity; with k == 0 every
// boundary collapses to 0, turning any non-empty set into the full set.
func (s *RangeSet) Scale(k uint64) {
	if k == 1 {
		return
	}
	if k == 0 {
		if !s.IsEmpty() {
			s.Fill()
		}
		return
	}
	r := New()
	v := s.pairs()
	for i := 0; i < len(v); i += 2 {
		r.AddRange(v[i]*k, v[i+1]*k)
	}
	*s = *r
}

// Scaled returns a scaled copy of the set.
func (s *RangeSet) Scaled(k uint64) *RangeSet {
	r := s.Clone()
	r.Scale(k)
	return r
}
