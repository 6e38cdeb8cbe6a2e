package sbv

import "github.com/cockroachdb/errors"

// Sentinel error kinds. Check with errors.Is against these; do not compare
// error values directly, since every returned error is wrapped with context.
var (
	// ErrInvalidSize is returned by Construct when N is negative or the
	// derived parameters are degenerate.
	ErrInvalidSize = errors.New("sbv: invalid size")

	// ErrOutOfRange is returned by Rank and Select when the argument falls
	// outside its documented contract.
	ErrOutOfRange = errors.New("sbv: out of range")

	// ErrCorrupted is returned when a query detects an internal
	// consistency violation. It indicates a programming defect in the
	// index itself, never a property of the input data.
	ErrCorrupted = errors.New("sbv: corrupted index")
)

func invalidSizef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidSize, format, args...)
}

func outOfRangef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrOutOfRange, format, args...)
}

// corruptedf raises an assertion failure: the caller reached a state the
// construction invariants guarantee cannot happen. Mirrors the
// AssertionFailedf usage this corpus's cockroachdb/pebble reserves for
// "this is a bug, not a data problem".
func corruptedf(format string, args ...interface{}) error {
	return errors.Mark(errors.AssertionFailedf(format, args...), ErrCorrupted)
}
