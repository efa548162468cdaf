package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestLoadErrorFormatting(t *testing.T) {
	cases := []struct {
		name string
		err  *Load
		want string
	}{
		{
			name: "code-and-message",
			err:  NewLoad(ErrUnknownField, "field q0001 not declared"),
			want: "[taxo-unknown-field] field q0001 not declared",
		},
		{
			name: "with-artifact",
			err:  Malformed("schema.xsd", errors.New("unexpected EOF")),
			want: "[taxo-malformed-artifact] artifact could not be parsed (artifact: schema.xsd): unexpected EOF",
		},
		{
			name: "with-location",
			err: &Load{
				Code:     ErrDuplicateField,
				Message:  "field q0001 referenced twice",
				Location: "Governance, Oversight",
			},
			want: "[taxo-duplicate-field] field q0001 referenced twice at Governance, Oversight",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoadErrorNil(t *testing.T) {
	var err *Load
	if got := err.Error(); !strings.Contains(got, "nil") {
		t.Fatalf("nil Error() = %q", got)
	}
	if err.Unwrap() != nil {
		t.Fatalf("nil Unwrap() = %v, want nil", err.Unwrap())
	}
}

func TestAsLoadThroughWrapping(t *testing.T) {
	inner := Missing("labels.xml", fs.ErrNotExist)
	wrapped := fmt.Errorf("load taxonomy: %w", inner)

	load, ok := AsLoad(wrapped)
	if !ok {
		t.Fatalf("AsLoad(%v) = false, want true", wrapped)
	}
	if load.Code != ErrMissingArtifact {
		t.Fatalf("Code = %s, want %s", load.Code, ErrMissingArtifact)
	}
	if !errors.Is(wrapped, fs.ErrNotExist) {
		t.Fatalf("errors.Is(fs.ErrNotExist) = false, want true")
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("cast: %w", NewLoad(ErrDuplicateCategoryKey, "FR collides"))
	if !IsCode(err, ErrDuplicateCategoryKey) {
		t.Fatalf("IsCode(ErrDuplicateCategoryKey) = false, want true")
	}
	if IsCode(err, ErrUnknownField) {
		t.Fatalf("IsCode(ErrUnknownField) = true, want false")
	}
	if IsCode(nil, ErrUnknownField) {
		t.Fatalf("IsCode(nil) = true, want false")
	}
}

func TestLoadIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("bind: %w", &Load{Code: ErrDuplicateField, Message: "q0007", Location: "A, B"})
	if !errors.Is(err, &Load{Code: ErrDuplicateField}) {
		t.Fatalf("errors.Is by code = false, want true")
	}
	if errors.Is(err, &Load{Code: ErrMissingArtifact}) {
		t.Fatalf("errors.Is mismatched code = true, want false")
	}
}
