// Package factorial computes n! with arbitrary precision. Two observably
// equivalent variants are provided: one delegating to the math/big product
// primitive and one accumulating the product manually.
package factorial

import (
	"encoding/json"
	"math/big"

	"DevKit/internal/errors"
)

// Compute returns n! by delegating to the arbitrary-precision product
// primitive of the standard library. The result of the primitive is returned
// unchanged.
func Compute(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, errors.Newf(errors.CodeInvalidArgument, "factorial undefined for negative input %d", n)
	}
	// MulRange(2, n) is the empty product (1) for n < 2, which is the
	// correct value for 0! and 1!.
	return new(big.Int).MulRange(2, n), nil
}

// ComputeManual returns n! computed iteratively: the accumulator starts at 1
// and is multiplied by every integer from 2 through n inclusive.
func ComputeManual(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, errors.Newf(errors.CodeInvalidArgument, "factorial undefined for negative input %d", n)
	}
	result := big.NewInt(1)
	for i := int64(2); i <= n; i++ {
		result.Mul(result, big.NewInt(i))
	}
	return result, nil
}

// CoerceInt converts the dynamically-typed values produced by JSON decoding
// or configuration layers into an int64. Anything that is not an integer
// value, including floating-point numbers and strings, fails with
// INVALID_ARGUMENT and no computation is attempted by the caller.
func CoerceInt(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > uint64(1)<<63-1 {
			return 0, errors.Newf(errors.CodeInvalidArgument, "input %d overflows int64", n)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, errors.Wrap(errors.CodeInvalidArgument, err, "input must be an integer")
		}
		return i, nil
	default:
		return 0, errors.Newf(errors.CodeInvalidArgument, "input must be an integer, got %T", v)
	}
}
