package coinflip

import (
	"encoding/binary"
	"errors"
	"math"
)

type AccountID string

// Coin is the single game entity an account owns. It is a plain value,
// the store hands out copies only.
type Coin struct {
	Side Side `json:"side"`
}

// SystemID separates this game's entropy domain from any other consumer
// of the same randomness source.
type SystemID [8]byte

var DefaultSystemID = SystemID{'c', 'o', 'i', 'n', 'f', 'l', 'i', 'p'}

var ErrInvalidSystemID = errors.New("system id must be 1 to 8 bytes")

func NewSystemID(id string) (SystemID, error) {
	var sid SystemID
	if len(id) == 0 || len(id) > len(sid) {
		return sid, ErrInvalidSystemID
	}
	copy(sid[:], id)
	return sid, nil
}

func (id SystemID) String() string {
	n := len(id)
	for n > 0 && id[n-1] == 0 {
		n--
	}
	return string(id[:n])
}

// RandomnessSource turns a subject into a wide entropy value. It must be a
// pure function of its input.
type RandomnessSource interface {
	Random(subject []byte) []byte
}

// Sequence exposes a monotonically increasing position, e.g. block height.
type Sequence interface {
	Height() uint64
}

// SeedFromHeight narrows a height to the 32 bit seed. Heights that do not
// fit saturate to zero.
func SeedFromHeight(height uint64) uint32 {
	if height > math.MaxUint32 {
		return 0
	}
	return uint32(height)
}

// EntropySubject encodes (system id, seed) as the randomness subject:
// eight id bytes followed by the little-endian seed.
func EntropySubject(id SystemID, seed uint32) []byte {
	subject := make([]byte, len(id)+4)
	copy(subject, id[:])
	binary.LittleEndian.PutUint32(subject[len(id):], seed)
	return subject
}

// SideFromEntropy reduces an entropy value to a side by the parity of its
// first little-endian 32 bit word. Even is Head. Short values are zero padded.
func SideFromEntropy(entropy []byte) Side {
	var word [4]byte
	copy(word[:], entropy)
	if binary.LittleEndian.Uint32(word[:])%2 == 0 {
		return Head
	}
	return Tail
}
