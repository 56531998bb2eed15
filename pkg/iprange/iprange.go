// Package iprange bridges pixel-style range sets and IPv4 address
// space. An IPv4 address is a 32 bit index, so a set of addresses is a
// range set over [0, 2^32), and CIDR math reduces to set algebra.
package iprange

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"github.com/bonimy/sphgeom/pkg/rangeset"
	"github.com/hansthienpondt/nipam/pkg/table"
	"go4.org/netipx"
)

const addrSpace = uint64(1) << 32

func addrToUint64(a netip.Addr) (uint64, error) {
	if !a.Is4() {
		return 0, fmt.Errorf("ip address %s is not an ipv4 address", a)
	}
	b := a.As4()
	return uint64(binary.BigEndian.Uint32(b[:])), nil
}

func addrFromUint64(u uint64) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(u))
	return netip.AddrFrom4(b)
}

// FromRange returns the set of addresses in r, both ends included.
func FromRange(r netipx.IPRange) (*rangeset.RangeSet, error) {
	from, err := addrToUint64(r.From())
	if err != nil {
		return nil, err
	}
	to, err := addrToUint64(r.To())
	if err != nil {
		return nil, err
	}
	// to+1 is 2^32 for 255.255.255.255, still inside the 64 bit domain
	return rangeset.OfRange(from, to+1), nil
}

// FromPrefix returns the set of addresses covered by the prefix.
func FromPrefix(pfx netip.Prefix) (*rangeset.RangeSet, error) {
	r := netipx.RangeOfPrefix(pfx)
	if !r.IsValid() {
		return nil, fmt.Errorf("prefix %s is invalid", pfx)
	}
	return FromRange(r)
}

// FromIPSet flattens an address set into a range set.
func FromIPSet(s *netipx.IPSet) (*rangeset.RangeSet, error) {
	out := rangeset.New()
	for _, r := range s.Ranges() {
		rs, err := FromRange(r)
		if err != nil {
			return nil, err
		}
		out.UnionWith(rs)
	}
	return out, nil
}

// ToRanges converts a range set back to inclusive address ranges. The
// set must not reach beyond the ipv4 address space.
func ToRanges(s *rangeset.RangeSet) ([]netipx.IPRange, error) {
	if !s.IsWithin(0, addrSpace) {
		return nil, fmt.Errorf("set %s does not fit in the ipv4 address space", s)
	}
	var out []netipx.IPRange
	iter := s.Ranges()
	for iter.Next() {
		rg := iter.Range()
		out = append(out, netipx.IPRangeFrom(addrFromUint64(rg.First), addrFromUint64(rg.Last-1)))
	}
	return out, nil
}

// Prefixes returns the minimal set of CIDR prefixes covering s.
func Prefixes(s *rangeset.RangeSet) ([]netip.Prefix, error) {
	ranges, err := ToRanges(s)
	if err != nil {
		return nil, err
	}
	var out []netip.Prefix
	for _, r := range ranges {
		out = append(out, r.Prefixes()...)
	}
	return out, nil
}

// Routes renders s as routing table entries, one per covering prefix,
// each carrying the given labels.
func Routes(s *rangeset.RangeSet, lbls map[string]string) (table.Routes, error) {
	prefixes, err := Prefixes(s)
	if err != nil {
		return nil, err
	}
	var routes table.Routes
	for _, pfx := range prefixes {
		routes = append(routes, table.NewRoute(pfx, lbls, nil))
	}
	return routes, nil
}
