package errors

import "testing"

func TestError_Error(t *testing.T) {
	err := &Error{
		Code:    ErrNotFound,
		Message: "thread not found: auth",
	}

	expected := "NOT_FOUND: thread not found: auth"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewAmbiguousHash(t *testing.T) {
	err := NewAmbiguousHash("ab", 3)

	if err.Code != ErrAmbiguousHash {
		t.Errorf("Code = %q, want %q", err.Code, ErrAmbiguousHash)
	}
	if err.Details["hash"] != "ab" {
		t.Errorf("Details[hash] = %v, want %q", err.Details["hash"], "ab")
	}
	if err.Details["count"] != 3 {
		t.Errorf("Details[count] = %v, want 3", err.Details["count"])
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("auth")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Details["ref"] != "auth" {
		t.Errorf("Details[ref] = %v, want %q", err.Details["ref"], "auth")
	}
}

func TestNewUnknownField(t *testing.T) {
	err := NewUnknownField("color")

	if err.Code != ErrUnknownField {
		t.Errorf("Code = %q, want %q", err.Code, ErrUnknownField)
	}
	if err.Message != "unknown field: color" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestIs(t *testing.T) {
	err := NewInvalidRequest("bad input")

	if !Is(err, ErrInvalidRequest) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrNotFound) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(nil, ErrNotFound) {
		t.Error("Is(nil) = true")
	}
}
