// Package quiz has helpers for randomized, property-style specs.
// Set RAND_SEED to replay a failing run.
package quiz

import (
	"math/rand"
	"os"
	"strconv"
	"time"
)

var Seed int64

var Rand *rand.Rand

func init() {
	seed, err := strconv.ParseInt(os.Getenv("RAND_SEED"), 10, 64)
	if err != nil {
		seed = time.Now().UnixNano()
	}
	Seed = seed
	Rand = rand.New(rand.NewSource(seed))
}

// Digits returns a random string of n ASCII digits.
func Digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + Rand.Intn(10))
	}
	return string(b)
}

// Between returns a random int in [lo, hi].
func Between(lo, hi int) int {
	return lo + Rand.Intn(hi-lo+1)
}
