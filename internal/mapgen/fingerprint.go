package mapgen

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"lukechampine.com/blake3"

	"github.com/tomz197/planetwars/internal/object"
)

// Fingerprint identifies a starting layout: two layouts share a fingerprint
// exactly when every planet has the same position, radius, owner, ships and
// name, in the same order. The result is 16 hex characters.
func Fingerprint(planets []*object.Planet) string {
	h := blake3.New(8, nil)
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	for _, p := range planets {
		writeFloat(p.X())
		writeFloat(p.Y())
		writeFloat(p.Radius())
		binary.LittleEndian.PutUint64(buf[:], uint64(p.Owner())<<32|uint64(uint32(p.Ships())))
		h.Write(buf[:])
		h.Write([]byte(p.Name()))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
