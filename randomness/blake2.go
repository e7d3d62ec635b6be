// Package randomness provides coinflip.RandomnessSource implementations.
//
// None of them is secure: the subject they hash is built from public chain
// state, so the result can be computed by anyone ahead of time.
package randomness

import (
	"errors"

	"golang.org/x/crypto/blake2b"
)

var ErrKeyTooLong = errors.New("randomness key must be at most 64 bytes")

// Blake2 hashes the subject with BLAKE2b-256, optionally keyed.
type Blake2 struct {
	key []byte
}

func NewBlake2() *Blake2 {
	return &Blake2{}
}

// NewKeyedBlake2 mixes a node local key into every draw. Nodes with
// different keys disagree on outcomes.
func NewKeyedBlake2(key []byte) (*Blake2, error) {
	if len(key) > blake2b.Size {
		return nil, ErrKeyTooLong
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Blake2{key: k}, nil
}

func (b *Blake2) Random(subject []byte) []byte {
	if len(b.key) == 0 {
		sum := blake2b.Sum256(subject)
		return sum[:]
	}
	h, err := blake2b.New256(b.key)
	if err != nil {
		// key length is checked on construction
		panic(err)
	}
	h.Write(subject)
	return h.Sum(nil)
}
