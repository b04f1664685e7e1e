package factorial

import (
	"encoding/json"
	stdErrors "errors"
	"math/big"
	"testing"

	"DevKit/internal/errors"
)

func TestKnownValues(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "1"},
		{1, "1"},
		{5, "120"},
		{10, "3628800"},
		{20, "2432902008176640000"},
	}
	for _, tc := range cases {
		got, err := Compute(tc.n)
		if err != nil {
			t.Fatalf("Compute(%d): unexpected error: %v", tc.n, err)
		}
		if got.String() != tc.want {
			t.Fatalf("Compute(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestVariantsAgree(t *testing.T) {
	for n := int64(0); n <= 500; n++ {
		delegated, err := Compute(n)
		if err != nil {
			t.Fatalf("Compute(%d): %v", n, err)
		}
		manual, err := ComputeManual(n)
		if err != nil {
			t.Fatalf("ComputeManual(%d): %v", n, err)
		}
		if delegated.Cmp(manual) != 0 {
			t.Fatalf("variants disagree at n=%d: %s vs %s", n, delegated, manual)
		}
	}
}

func TestExceedsFixedWidth(t *testing.T) {
	// 21! no longer fits in uint64; make sure nothing truncates silently.
	got, err := Compute(21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	limit := new(big.Int).SetUint64(^uint64(0))
	if got.Cmp(limit) <= 0 {
		t.Fatalf("21! should exceed the uint64 range, got %s", got)
	}
}

func TestNegativeInputFailsFast(t *testing.T) {
	for _, compute := range []func(int64) (*big.Int, error){Compute, ComputeManual} {
		if _, err := compute(-1); errors.CodeOf(err) != errors.CodeInvalidArgument {
			t.Fatalf("expected INVALID_ARGUMENT for negative input, got %v", err)
		}
	}
}

func TestCoerceIntRejectsNonIntegers(t *testing.T) {
	cases := []any{3.14, 5.0, "42", true, nil, []any{1}, json.Number("2.5")}
	for _, v := range cases {
		if _, err := CoerceInt(v); !stdErrors.Is(err, errors.New(errors.CodeInvalidArgument, "")) {
			t.Fatalf("CoerceInt(%#v): expected INVALID_ARGUMENT, got %v", v, err)
		}
	}
}

func TestCoerceIntAcceptsIntegers(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{5, 5},
		{int64(7), 7},
		{uint32(9), 9},
		{json.Number("12"), 12},
	}
	for _, tc := range cases {
		got, err := CoerceInt(tc.in)
		if err != nil {
			t.Fatalf("CoerceInt(%#v): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("CoerceInt(%#v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
