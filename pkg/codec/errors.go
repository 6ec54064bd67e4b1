package codec

import "errors"

// Sentinel errors for load failures.
var (
	// ErrHeaderParse indicates a malformed or unterminated textual header.
	ErrHeaderParse = errors.New("malformed header")
	// ErrWidthMismatch indicates the file declares field widths this
	// implementation cannot decode.
	ErrWidthMismatch = errors.New("incompatible field width")
	// ErrTruncated indicates the packed data section ended early.
	ErrTruncated = errors.New("truncated data section")
)
