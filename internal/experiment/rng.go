package experiment

import (
	"hash/fnv"
	"math/rand"
)

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed isolates a labelled sub-run from the master seed:
// master XOR fnv1a64(label). The same pair always yields the same seed.
func DeriveSeed(master int64, label string) int64 {
	return master ^ fnv1a64(label)
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
