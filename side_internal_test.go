package coinflip

import (
	"encoding/json"
	"testing"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		input    string
		expected Side
		err      bool
	}{
		{input: "head", expected: Head},
		{input: "Heads", expected: Head},
		{input: " TAIL ", expected: Tail},
		{input: "tails", expected: Tail},
		{input: "edge", err: true},
		{input: "", err: true},
	}

	for i, test := range tests {
		side, err := ParseSide(test.input)
		if test.err {
			if err == nil {
				t.Fatalf("test[%d] failed: expected error for %q", i, test.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("test[%d] failed: unexpected err: %s", i, err)
		}
		if side != test.expected {
			t.Fatalf("test[%d] failed: expected side is %s, but got %s", i, test.expected, side)
		}
	}
}

func TestSide_Opposite(t *testing.T) {
	if Head.Opposite() != Tail {
		t.Fatalf("opposite of head must be tail")
	}
	if Tail.Opposite() != Head {
		t.Fatalf("opposite of tail must be head")
	}
}

func TestSide_JSON(t *testing.T) {
	buf, err := json.Marshal(Coin{Side: Tail})
	if err != nil {
		t.Fatalf("unexpected err: %s", err)
	}
	if string(buf) != `{"side":"tail"}` {
		t.Fatalf("expected json is %s, but got %s", `{"side":"tail"}`, buf)
	}

	coin := Coin{}
	if err := json.Unmarshal([]byte(`{"side":"tail"}`), &coin); err != nil {
		t.Fatalf("unexpected err: %s", err)
	}
	if coin.Side != Tail {
		t.Fatalf("expected side is %s, but got %s", Tail, coin.Side)
	}

	if _, err := json.Marshal(Coin{Side: Side(7)}); err == nil {
		t.Fatalf("marshalling an invalid side must fail")
	}
}
