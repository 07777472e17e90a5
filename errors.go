package fse

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors returned by this package. Callers should match them with
// errors.Is; wrapped instances carry positional context for debugging but
// still unwrap to one of these.
var (
	// ErrBadParameter covers an out-of-range tableLog, an nbSymbols beyond
	// MaxNbSymbols, or a zero-length input where one is not allowed.
	ErrBadParameter = errors.New("fse: bad parameter")

	// ErrInconsistentDistribution covers a spread permutation that failed
	// to return to its origin, normalized counts that don't sum to
	// 2^tableLog, or a header whose body overspends its remaining budget.
	ErrInconsistentDistribution = errors.New("fse: inconsistent distribution")

	// ErrTruncatedInput is returned by the safe-decode path when a read
	// would cross the caller-supplied maxCompressedSize bound.
	ErrTruncatedInput = errors.New("fse: truncated input")

	// ErrMalformedStream is returned when, after decoding all output
	// symbols, the input cursor has not returned exactly to the start of
	// the payload, or residual bits remain.
	ErrMalformedStream = errors.New("fse: malformed stream")
)

// wrapf adds positional context to a sentinel error without losing the
// errors.Is match. Used at construction boundaries (normalize, header,
// table build) where a caller debugging a failure wants to know which
// symbol or offset triggered it.
func wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}
