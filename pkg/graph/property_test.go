package graph

import (
	"errors"
	"testing"
)

// TestScalar_Dim tests that a scalar property has dimension 1
func TestScalar_Dim(t *testing.T) {
	p := Scalar(3.5)

	if p.Dim() != 1 {
		t.Fatalf("Expected dim 1, got %d", p.Dim())
	}

	v, err := p.At(0)
	if err != nil {
		t.Fatalf("At(0) failed: %v", err)
	}
	if v != 3.5 {
		t.Errorf("Expected 3.5, got %v", v)
	}
}

// TestNewProperty_PreservesOrder tests element order and copying
func TestNewProperty_PreservesOrder(t *testing.T) {
	src := []float64{1, 2, 3}
	p := NewProperty(src...)

	if p.Dim() != 3 {
		t.Fatalf("Expected dim 3, got %d", p.Dim())
	}
	for i, want := range src {
		v, err := p.At(i)
		if err != nil {
			t.Fatalf("At(%d) failed: %v", i, err)
		}
		if v != want {
			t.Errorf("Element %d: expected %v, got %v", i, want, v)
		}
	}

	// The input slice is copied, not aliased
	src[0] = 99
	if v, _ := p.At(0); v != 1 {
		t.Errorf("Property aliased its input slice: got %v", v)
	}
}

// TestProperty_AtOutOfRange tests bounds checking on element access
func TestProperty_AtOutOfRange(t *testing.T) {
	p := NewProperty(1, 2)

	for _, i := range []int{-1, 2, 100} {
		if _, err := p.At(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("At(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if err := p.Set(i, 0); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Set(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
}

// TestProperty_SetMutatesInPlace tests in-place element mutation
func TestProperty_SetMutatesInPlace(t *testing.T) {
	p := NewProperty(1, 2, 3)

	if err := p.Set(1, 42); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := p.At(1); v != 42 {
		t.Errorf("Expected 42 after Set, got %v", v)
	}
	if p.Dim() != 3 {
		t.Errorf("Set changed the dimension to %d", p.Dim())
	}
}

// TestProperty_CloneIsIndependent tests deep copying
func TestProperty_CloneIsIndependent(t *testing.T) {
	p := NewProperty(1, 2)
	clone := p.Clone()

	clone.Set(0, 99)
	if v, _ := p.At(0); v != 1 {
		t.Errorf("Clone shares storage with original: got %v", v)
	}
}
