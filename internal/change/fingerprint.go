// Package change decides whether the hierarchy changed enough since the
// last resolution pass to be worth another one.
//
// Structural notifications arrive far more often than the structure
// actually changes (selection changes fire them too), so a cheap
// fingerprint of the current scope is compared against the last one seen.
// Field values never contribute to the fingerprint: only parent/child
// topology and the root set do.
package change

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"auto-assigner/internal/host"
)

// Fingerprint is a cheap structural signature of a scope.
type Fingerprint uint64

// Mode selects how much of the hierarchy a fingerprint covers.
type Mode string

const (
	// ModeShallow XORs root identities and root child counts. It is O(roots)
	// but misses sibling reorders and edits below the first level that keep
	// counts unchanged.
	ModeShallow Mode = "shallow"
	// ModeDeep hashes the pre-order topology of every node (identity, depth,
	// child count), so reorders and grandchild edits are detected.
	ModeDeep Mode = "deep"
)

// ParseMode validates a mode name; the empty string selects ModeDeep.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDeep:
		return ModeDeep, nil
	case ModeShallow:
		return ModeShallow, nil
	default:
		return "", fmt.Errorf("unknown fingerprint mode %q (want %q or %q)", s, ModeDeep, ModeShallow)
	}
}

// Compute fingerprints the hierarchy under roots.
func Compute(roots []host.Node, mode Mode) Fingerprint {
	if mode == ModeShallow {
		return shallow(roots)
	}

	return deep(roots)
}

func shallow(roots []host.Node) Fingerprint {
	var fp uint64

	for _, r := range roots {
		fp ^= uint64(r.InstanceID())
		fp ^= uint64(len(r.Children()))
	}

	return Fingerprint(fp)
}

func deep(roots []host.Node) Fingerprint {
	d := xxhash.New()

	var buf [8 * 3]byte

	var walk func(n host.Node, depth int)
	walk = func(n host.Node, depth int) {
		children := n.Children()

		binary.LittleEndian.PutUint64(buf[0:], uint64(n.InstanceID()))
		binary.LittleEndian.PutUint64(buf[8:], uint64(depth))
		binary.LittleEndian.PutUint64(buf[16:], uint64(len(children)))
		_, _ = d.Write(buf[:])

		for _, c := range children {
			walk(c, depth+1)
		}
	}

	for _, r := range roots {
		walk(r, 0)
	}

	return Fingerprint(d.Sum64())
}
