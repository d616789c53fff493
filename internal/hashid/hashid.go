// Package hashid computes the stable 32-bit identifiers used for class type
// IDs, property IDs and enum names.
//
// The algorithm is pinned: CRC-32 (IEEE polynomial) over the UTF-8 bytes of
// the identifier. Serialized data downstream keys on these values, so the
// function must never change.
package hashid

import (
	"fmt"
	"hash/crc32"
	"strconv"
)

// ID is a stable identifier derived from a name.
type ID uint32

// Of returns the identifier of name.
func Of(name string) ID {
	return ID(crc32.ChecksumIEEE([]byte(name)))
}

// Hex renders the ID as lowercase hex with a 0x prefix and no padding,
// the form found in previously generated artifacts.
func (id ID) Hex() string {
	return "0x" + strconv.FormatUint(uint64(id), 16)
}

// PaddedHex renders the ID as 0x followed by exactly eight lowercase hex digits.
func (id ID) PaddedHex() string {
	return fmt.Sprintf("0x%08x", uint32(id))
}

// Format picks Hex or PaddedHex.
func (id ID) Format(padded bool) string {
	if padded {
		return id.PaddedHex()
	}

	return id.Hex()
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return id.Hex()
}
