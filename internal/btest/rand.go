package btest

import (
	"crypto/sha256"
	"math/rand/v2"
	"testing"
)

// RNGForTest returns a generator seeded from the test name,
// so a test sees the same sequence on every run.
func RNGForTest(t *testing.T) *rand.Rand {
	return rand.New(chachaForTest(t))
}

// RandomDataForTest returns sz pseudorandom bytes
// from the same per-test seed as [RNGForTest].
func RandomDataForTest(t *testing.T, sz int) []byte {
	out := make([]byte, sz)
	if _, err := chachaForTest(t).Read(out); err != nil {
		panic(err)
	}
	return out
}

// chachaForTest seeds ChaCha8 with the sha256 of the test name.
// The digest is exactly the seed size,
// and the test name may be any length.
func chachaForTest(t *testing.T) *rand.ChaCha8 {
	return rand.NewChaCha8(sha256.Sum256([]byte(t.Name())))
}
