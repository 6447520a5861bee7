package codec

import "fmt"

// FormatError reports input this codec refuses to decode: a packed
// buffer with the wrong length, an enum outside its domain, or a
// malformed document. Decoding is atomic, so a FormatError always
// means nothing was populated.
type FormatError struct {
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed record data: %s", e.Reason)
	}
	return fmt.Sprintf("malformed record data: %s: %s", e.Field, e.Reason)
}

func formatErrorf(field, format string, args ...any) error {
	return &FormatError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
