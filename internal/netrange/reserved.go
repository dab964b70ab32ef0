// Package netrange knows which address blocks can never be geolocated.
//
// The table is only consulted when the reserved-address pre-check is enabled;
// otherwise providers are trusted to reject such addresses themselves.
package netrange

import (
	"fmt"
	"net/netip"

	"github.com/asergeyev/nradix"
)

// reservedBlocks are the IANA special-purpose blocks (RFC 6890 and successors)
// that are not globally routable. Values are the labels used in error messages.
var reservedBlocks = []struct {
	cidr  string
	label string
}{
	{"0.0.0.0/8", "this network"},
	{"10.0.0.0/8", "private range"},
	{"100.64.0.0/10", "shared address space"},
	{"127.0.0.0/8", "loopback"},
	{"169.254.0.0/16", "link-local"},
	{"172.16.0.0/12", "private range"},
	{"192.0.0.0/24", "IETF protocol assignments"},
	{"192.0.2.0/24", "documentation"},
	{"192.168.0.0/16", "private range"},
	{"198.18.0.0/15", "benchmarking"},
	{"198.51.100.0/24", "documentation"},
	{"203.0.113.0/24", "documentation"},
	{"224.0.0.0/4", "multicast"},
	{"240.0.0.0/4", "reserved range"},

	{"::/128", "unspecified"},
	{"::1/128", "loopback"},
	{"64:ff9b:1::/48", "local-use translation"},
	{"100::/64", "discard-only"},
	{"2001:db8::/32", "documentation"},
	{"fc00::/7", "unique local"},
	{"fe80::/10", "link-local"},
	{"ff00::/8", "multicast"},
}

// Table answers "is this address reserved?" with radix tree lookups
// IPv4 and IPv6 live in separate trees so their bit prefixes never overlap
type Table struct {
	v4 *nradix.Tree
	v6 *nradix.Tree
}

// NewReservedTable builds the table of non-routable blocks
func NewReservedTable() (*Table, error) {
	table := &Table{
		v4: nradix.NewTree(0),
		v6: nradix.NewTree(0),
	}

	for _, block := range reservedBlocks {
		prefix, err := netip.ParsePrefix(block.cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid reserved block %s: %w", block.cidr, err)
		}

		tree := table.v6
		if prefix.Addr().Is4() {
			tree = table.v4
		}
		if err := tree.AddCIDR(block.cidr, block.label); err != nil {
			return nil, fmt.Errorf("cannot add reserved block %s: %w", block.cidr, err)
		}
	}

	return table, nil
}

// Lookup returns the label of the reserved block containing ip
// The second result is false for routable or unparsable addresses
func (t *Table) Lookup(ip string) (string, bool) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "", false
	}
	addr = addr.Unmap().WithZone("")

	tree, key := t.v6, addr.String()+"/128"
	if addr.Is4() {
		tree, key = t.v4, addr.String()+"/32"
	}

	value, err := tree.FindCIDR(key)
	if err != nil || value == nil {
		return "", false
	}

	label, ok := value.(string)
	return label, ok
}
