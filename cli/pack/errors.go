package pack

import "fmt"

// ParseError is returned for a malformed constraint or changelog string.
type ParseError struct {
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %s", e.Input, e.Msg)
}

// PathError is returned for an invalid or colliding install path.
type PathError struct {
	Path string
	Msg  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid install path %q: %s", e.Path, e.Msg)
}

// DuplicateTagError is returned when two records of one header share a tag
// identifier. A well-formed descriptor never produces it.
type DuplicateTagError struct {
	ID int
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("duplicate tag %d in header", e.ID)
}

// CompressionError wraps a failure of the underlying payload codec.
type CompressionError struct {
	Algorithm string
	Err       error
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("%s compression failed: %s", e.Algorithm, e.Err)
}

func (e *CompressionError) Unwrap() error { return e.Err }

// SigningError wraps malformed key material or a signing backend failure.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing failed: %s", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }
