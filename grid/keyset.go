package grid

import "math/bits"

// KeySet records which key identities a search branch has collected,
// one bit per identity. Six identities fit comfortably in a byte, and
// the compact form gives O(1) membership tests and state equality.
// Within a search a set only ever grows; keys are never dropped.
type KeySet uint8

// Has reports whether identity id is in the set.
func (k KeySet) Has(id int) bool {
	return k&(1<<uint(id)) != 0
}

// With returns the set extended by identity id.
func (k KeySet) With(id int) KeySet {
	return k | 1<<uint(id)
}

// Count returns the number of identities in the set.
func (k KeySet) Count() int {
	return bits.OnesCount8(uint8(k))
}

// String lists the held key symbols, or "-" for the empty set.
func (k KeySet) String() string {
	if k == 0 {
		return "-"
	}
	out := make([]byte, 0, NumIdentities)
	for id := 0; id < NumIdentities; id++ {
		if k.Has(id) {
			out = append(out, KeySymbol(id))
		}
	}
	return string(out)
}
