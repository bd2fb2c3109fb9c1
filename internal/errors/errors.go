package errors

import "fmt"

// ErrorCode represents a strand error code.
type ErrorCode string

const (
	ErrMissingDelimiter ErrorCode = "MISSING_DELIMITER" // file does not start with ---
	ErrUnclosedHeader   ErrorCode = "UNCLOSED_HEADER"   // no closing --- fence
	ErrHeaderParse      ErrorCode = "HEADER_PARSE"      // frontmatter is not valid YAML
	ErrUnknownField     ErrorCode = "UNKNOWN_FIELD"     // no such frontmatter field
	ErrItemNotFound     ErrorCode = "ITEM_NOT_FOUND"    // no item carries the hash
	ErrAmbiguousHash    ErrorCode = "AMBIGUOUS_HASH"    // hash prefix matches >1 item
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // bad operation input
	ErrNotFound         ErrorCode = "NOT_FOUND"         // thread cannot be resolved
	ErrIO               ErrorCode = "IO"                // file read/write failure
	ErrInternal         ErrorCode = "INTERNAL"          // unexpected internal error
)

// Error represents a structured error with a code and optional details.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMissingDelimiter reports a file that does not begin with the --- fence.
func NewMissingDelimiter(path string) *Error {
	return &Error{
		Code:    ErrMissingDelimiter,
		Message: "missing frontmatter delimiter",
		Details: map[string]any{"path": path},
	}
}

// NewUnclosedHeader reports a frontmatter block with no closing fence.
func NewUnclosedHeader(path string) *Error {
	return &Error{
		Code:    ErrUnclosedHeader,
		Message: "unclosed frontmatter",
		Details: map[string]any{"path": path},
	}
}

// NewHeaderParse wraps a YAML deserialization failure.
func NewHeaderParse(path string, err error) *Error {
	return &Error{
		Code:    ErrHeaderParse,
		Message: fmt.Sprintf("parsing frontmatter: %v", err),
		Details: map[string]any{"path": path},
	}
}

// NewUnknownField reports an attempt to set a frontmatter field that does not exist.
func NewUnknownField(field string) *Error {
	return &Error{
		Code:    ErrUnknownField,
		Message: fmt.Sprintf("unknown field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// NewItemNotFound reports that no item in the section carries the hash.
func NewItemNotFound(hash string) *Error {
	return &Error{
		Code:    ErrItemNotFound,
		Message: fmt.Sprintf("no item with hash %q found", hash),
		Details: map[string]any{"hash": hash},
	}
}

// NewAmbiguousHash reports a hash prefix matching more than one item.
// Mutating operations must not proceed on an ambiguous prefix.
func NewAmbiguousHash(hash string, count int) *Error {
	return &Error{
		Code:    ErrAmbiguousHash,
		Message: fmt.Sprintf("ambiguous hash %q matches %d items", hash, count),
		Details: map[string]any{"hash": hash, "count": count},
	}
}

// NewInvalidRequest creates an error for invalid operation parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewNotFound reports a thread reference that resolves to nothing.
func NewNotFound(ref string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("thread not found: %s", ref),
		Details: map[string]any{"ref": ref},
	}
}

// NewIO wraps a file read/write failure.
func NewIO(err error) *Error {
	return &Error{
		Code:    ErrIO,
		Message: err.Error(),
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a strand Error with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*Error); ok {
		return sErr.Code == code
	}
	return false
}
