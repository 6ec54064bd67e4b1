package validation

import (
	"errors"
	"testing"
)

// TestPropertyName_Valid tests names the file format can represent
func TestPropertyName_Valid(t *testing.T) {
	for _, name := range []string{"prior", "count", "fa_map", "T1 weighted", "x"} {
		if err := PropertyName(name); err != nil {
			t.Errorf("PropertyName(%q) rejected a valid name: %v", name, err)
		}
	}
}

// TestPropertyName_Invalid tests names that would corrupt the header schema line
func TestPropertyName_Invalid(t *testing.T) {
	for _, name := range []string{"", "a,b", "a:b", "(a", "a)", " leading", "trailing ", "\ttab"} {
		if err := PropertyName(name); !errors.Is(err, ErrInvalidPropertyName) {
			t.Errorf("PropertyName(%q): expected ErrInvalidPropertyName, got %v", name, err)
		}
	}
}

// TestStruct_Tags tests struct-tag validation and the rewritten error message
func TestStruct_Tags(t *testing.T) {
	type opts struct {
		Name string `validate:"required"`
		Dim  int    `validate:"min=1"`
	}

	if err := Struct(opts{Name: "prior", Dim: 1}); err != nil {
		t.Fatalf("Valid struct rejected: %v", err)
	}

	err := Struct(opts{Name: "", Dim: 0})
	if err == nil {
		t.Fatal("Invalid struct accepted")
	}
}
