package lamportsig

import "testing"

func TestHDeterministic(t *testing.T) {
	a := H([]byte("hello, world"))
	b := H([]byte("hello, world"))
	if a != b {
		t.Fatalf("H is not deterministic: %x != %x", a, b)
	}
}

func TestHDistinguishesInputs(t *testing.T) {
	a := H([]byte("one"))
	b := H([]byte("two"))
	if a == b {
		t.Fatalf("H collided on distinct short inputs: %x", a)
	}
}

func TestH2NotCommutative(t *testing.T) {
	a := H([]byte("left"))
	b := H([]byte("right"))
	if H2(a, b) == H2(b, a) {
		t.Fatalf("H2(a,b) == H2(b,a): concatenation order is not being respected")
	}
}
