package lamportsig

import "fmt"

// Error is the error type returned by this package. It extends the
// standard error interface with Unwrap so callers can use errors.As/Is to
// inspect a wrapped cause, following misc.go's Error/errorImpl split,
// renamed here since Go 1.13's errors.Unwrap convention already covers
// the "does this wrap another error" question the old Inner() method
// answered by hand.
type Error interface {
	error
	Unwrap() error
}

type signError struct {
	msg   string
	inner error
}

func (err *signError) Error() string {
	if err.inner != nil {
		return fmt.Sprintf("%s: %s", err.msg, err.inner.Error())
	}
	return err.msg
}

func (err *signError) Unwrap() error { return err.inner }

func errorf(format string, a ...interface{}) *signError {
	return &signError{msg: fmt.Sprintf(format, a...)}
}

func wrapErrorf(err error, format string, a ...interface{}) *signError {
	return &signError{msg: fmt.Sprintf(format, a...), inner: err}
}

// NotEnoughInputError is returned by a Decode* function when the supplied
// buffer is shorter than the artifact it is supposed to hold.
type NotEnoughInputError struct {
	// ObservedLength is the number of bytes actually supplied.
	ObservedLength int
}

func (e *NotEnoughInputError) Error() string {
	return fmt.Sprintf("lamportsig: not enough input: got %d bytes", e.ObservedLength)
}

// InvalidProofNodeTagError is returned when a ProofNode's leading tag byte
// does not match any of the three recognized ProofNodeKind values.
type InvalidProofNodeTagError struct {
	Tag byte
}

func (e *InvalidProofNodeTagError) Error() string {
	return fmt.Sprintf("lamportsig: invalid proof node tag 0x%02x", e.Tag)
}

// SignatureDecodingError wraps a lower-level decoding failure (either a
// NotEnoughInputError or an InvalidProofNodeTagError) encountered while
// decoding a many-time Signature, mirroring merkle.rs's
// SignatureDecodingError enum.
type SignatureDecodingError struct {
	Inner error
}

func (e *SignatureDecodingError) Error() string {
	return fmt.Sprintf("lamportsig: signature decoding failed: %s", e.Inner.Error())
}

func (e *SignatureDecodingError) Unwrap() error { return e.Inner }
