package scenario

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"
)

// NewRand returns the generator threaded through every Generate call.
// The same seed string always yields the same sequence of problems;
// an empty seed falls back to wall-clock entropy.
func NewRand(seed string) *rand.Rand {
	if seed == "" {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(deriveSeed(seed)))
}

// deriveSeed maps a seed string to a stable non-negative int64.
func deriveSeed(seed string) int64 {
	h := sha256.Sum256([]byte("ledgerdrill|" + seed))
	v := int64(binary.LittleEndian.Uint64(h[:8]))
	if v < 0 {
		v = -v
	}
	return v
}

// between draws uniformly from [lo, hi].
func between(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Int63n(hi-lo+1)
}

// ceilDiv and floorDiv divide non-negative integers.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

func floorDiv(a, b int64) int64 {
	return a / b
}
