package coinflip

import (
	"fmt"
	"strings"
)

// Side is one face of a coin. The zero value is Head, which says nothing
// about how likely either face is.
type Side uint8

const (
	Head Side = iota
	Tail
)

func (s Side) String() string {
	switch s {
	case Head:
		return "head"
	case Tail:
		return "tail"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

func (s Side) Valid() bool {
	return s == Head || s == Tail
}

// Opposite returns the other face.
func (s Side) Opposite() Side {
	if s == Head {
		return Tail
	}
	return Head
}

func ParseSide(str string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "head", "heads":
		return Head, nil
	case "tail", "tails":
		return Tail, nil
	default:
		return Head, fmt.Errorf("invalid coin side: %q", str)
	}
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid coin side: %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}
