package random

import "testing"

func TestSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(7)
	b := NewSeeded(7)
	for i := 0; i < 20; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}
}

func TestNewWithZeroSeedUsesCryptoSeed(t *testing.T) {
	src, err := New(0)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	if v := src.Float64(); v < 0 || v >= 1 {
		t.Fatalf("draw out of range: %v", v)
	}
}

func TestFixed(t *testing.T) {
	var src Source = Fixed(0.25)
	if src.Float64() != 0.25 {
		t.Fatal("expected fixed draw")
	}
}
