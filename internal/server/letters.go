package server

import (
	crand "crypto/rand"
	"math/rand"
	"slices"
)

// Room codes avoid the ambiguous characters (I, O, 0, 1).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// Round letters skip the rare ones (K, Q, W, X, Y, Z) that leave most
// categories unanswerable.
const letterAlphabet = "ABCDEFGHIJLMNOPRSTUV"

func newRoomCode() string {
	buf := make([]byte, codeLength)
	if _, err := crand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = byte(rand.Intn(256))
		}
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf)
}

func drawLetter() string {
	return string(letterAlphabet[rand.Intn(len(letterAlphabet))])
}

// sampleCategories draws n distinct categories from the pool; a pool
// smaller than n is returned whole.
func sampleCategories(pool []string, n int) []string {
	if n >= len(pool) {
		return slices.Clone(pool)
	}
	out := make([]string, 0, n)
	for _, i := range rand.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}
