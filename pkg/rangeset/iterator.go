package rangeset

// Iterator is a forward-only cursor over the ranges of a RangeSet, in
// increasing order. Ranges are returned by value; the set does not store
// discrete range objects. Call Next before the first access:
//
//	iter := s.Ranges()
//	for iter.Next() {
//		r := iter.Range()
//		...
//	}
//
// Mutating the set invalidates all of its outstanding iterators.
type Iterator struct {
	pairs []uint64
	pos   int
}

// Ranges returns an iterator over the set's ranges.
func (s *RangeSet) Ranges() *Iterator {
	return &Iterator{pairs: s.pairs(), pos: -2}
}

// ComplementRanges returns an iterator over the ranges of the set's
// complement. It reads the opposite phase of the same buffer, so no
// complement set is materialized.
func (s *RangeSet) ComplementRanges() *Iterator {
	return &Iterator{pairs: s.cpairs(), pos: -2}
}

// Next advances the iterator and reports whether a range is available.
func (it *Iterator) Next() bool {
	it.pos += 2
	return it.pos < len(it.pairs)
}

// Range returns the current range.
func (it *Iterator) Range() Range {
	return Range{First: it.pairs[it.pos], Last: it.pairs[it.pos+1]}
}

// First returns the start of the current range.
func (it *Iterator) First() uint64 { return it.pairs[it.pos] }

// Last returns the end boundary of the current range; 0 means the range
// runs through the maximum value.
func (it *Iterator) Last() uint64 { return it.pairs[it.pos+1] }

// Reset rewinds the iterator to before the first range.
func (it *Iterator) Reset() { it.pos = -2 }
