package pixtable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bonimy/sphgeom/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

// PixTable tracks claims on ranges of pixel indexes within a fixed
// domain, e.g. to reserve coverage of a sky region for a catalog shard.
// Each claim is a half-open pixel range carrying a label set; occupancy
// is tracked as a range set, so adjacent claims cost no extra storage.
type PixTable interface {
	Get(first, last uint64) (labels.Set, error)
	Claim(first, last uint64, d labels.Set) error
	ClaimFree(size uint64, d labels.Set) (rangeset.Range, error)
	Release(first, last uint64) error
	Update(first, last uint64, d labels.Set) error

	Count() int
	Covered() uint64
	Has(u uint64) bool

	IsFree(first, last uint64) bool
	FindFree(size uint64) (rangeset.Range, error)

	Coverage() *rangeset.RangeSet
	GetAll() map[rangeset.Range]labels.Set
	GetByLabel(selector labels.Selector) map[rangeset.Range]labels.Set
}

// New returns a table over the pixel domain [first, last); the pair is
// interpreted with the range set's wraparound semantics, so New(0, 0)
// spans the whole 64 bit index space.
func New(first, last uint64) PixTable {
	return &pixTable{
		domain:  rangeset.OfRange(first, last),
		claimed: rangeset.New(),
		claims:  map[rangeset.Range]labels.Set{},
	}
}

// NewWithClaims returns a table over [first, last) pre-populated with the
// given claims. Entries that overlap or leave the domain are reported
// joined into a single error; the remaining entries are still applied.
func NewWithClaims(first, last uint64, initEntries map[rangeset.Range]labels.Set) (PixTable, error) {
	r := &pixTable{
		domain:  rangeset.OfRange(first, last),
		claimed: rangeset.New(),
		claims:  map[rangeset.Range]labels.Set{},
	}

	var errm error
	for rg, d := range initEntries {
		if err := r.claim(rg.First, rg.Last, d); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type pixTable struct {
	m       sync.RWMutex
	domain  *rangeset.RangeSet
	claimed *rangeset.RangeSet
	claims  map[rangeset.Range]labels.Set
}

func (r *pixTable) validate(first, last uint64) error {
	if !r.domain.Contains(first, last) {
		return fmt.Errorf("range [%d, %d) does not fit in the pixel domain %s", first, last, r.domain)
	}
	return nil
}

func (r *pixTable) Get(first, last uint64) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	d, ok := r.claims[rangeset.Range{First: first, Last: last}]
	if !ok {
		return nil, fmt.Errorf("no claim found for range [%d, %d)", first, last)
	}
	return d, nil
}

func (r *pixTable) Claim(first, last uint64, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.claim(first, last, d)
}

func (r *pixTable) claim(first, last uint64, d labels.Set) error {
	if err := r.validate(first, last); err != nil {
		return err
	}
	if r.claimed.Intersects(first, last) {
		return fmt.Errorf("claim failed, range [%d, %d) overlaps an existing claim", first, last)
	}
	r.claimed.AddRange(first, last)
	r.claims[rangeset.Range{First: first, Last: last}] = d
	return nil
}

func (r *pixTable) ClaimFree(size uint64, d labels.Set) (rangeset.Range, error) {
	r.m.Lock()
	defer r.m.Unlock()

	rg, err := r.findFree(size)
	if err != nil {
		return rangeset.Range{}, err
	}
	// getting an error is unlikely as we have a lock
	if err := r.claim(rg.First, rg.Last, d); err != nil {
		return rangeset.Range{}, err
	}
	return rg, nil
}

func (r *pixTable) Release(first, last uint64) error {
	r.m.Lock()
	defer r.m.Unlock()

	k := rangeset.Range{First: first, Last: last}
	if _, ok := r.claims[k]; !ok {
		return fmt.Errorf("no claim found for range [%d, %d)", first, last)
	}
	delete(r.claims, k)
	r.claimed.DeleteRange(first, last)
	return nil
}

func (r *pixTable) Update(first, last uint64, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	k := rangeset.Range{First: first, Last: last}
	if _, ok := r.claims[k]; !ok {
		return fmt.Errorf("update failed, range [%d, %d) not claimed", first, last)
	}
	r.claims[k] = d
	return nil
}

func (r *pixTable) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.claims)
}

// Covered returns the number of claimed pixels.
func (r *pixTable) Covered() uint64 {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Cardinality()
}

func (r *pixTable) Has(u uint64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Has(u)
}

func (r *pixTable) IsFree(first, last uint64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	if err := r.validate(first, last); err != nil {
		return false
	}
	return !r.claimed.Intersects(first, last)
}

func (r *pixTable) FindFree(size uint64) (rangeset.Range, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFree(size)
}

func (r *pixTable) findFree(size uint64) (rangeset.Range, error) {
	if size == 0 {
		return rangeset.Range{}, fmt.Errorf("size must be at least 1")
	}
	free := r.domain.Difference(r.claimed)
	iter := free.Ranges()
	for iter.Next() {
		rg := iter.Range()
		// a length of 0 is the full domain
		if n := rg.Len(); n == 0 || n >= size {
			return rangeset.Range{First: rg.First, Last: rg.First + size}, nil
		}
	}
	return rangeset.Range{}, fmt.Errorf("could not find a free range of size %d", size)
}

// Coverage returns a snapshot of the claimed pixel set.
func (r *pixTable) Coverage() *rangeset.RangeSet {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Clone()
}

func (r *pixTable) GetAll() map[rangeset.Range]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[rangeset.Range]labels.Set, len(r.claims))
	for rg, d := range r.claims {
		entries[rg] = d
	}
	return entries
}

func (r *pixTable) GetByLabel(selector labels.Selector) map[rangeset.Range]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := map[rangeset.Range]labels.Set{}
	for rg, d := range r.claims {
		if selector.Matches(d) {
			entries[rg] = d
		}
	}
	return entries
}
