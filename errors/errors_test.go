package errors

import "testing"

func TestErrorWrapperMessage(t *testing.T) {
	err := NewError("server.login", "credentials rejected by Amizone", ErrAuthFailed)
	want := "server.login: credentials rejected by Amizone: authentication failed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := NewError("server", "no session", nil)
	if bare.Error() != "server: no session" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestErrorWrapperUnwrap(t *testing.T) {
	err := NewError("amizone.call", "credentials rejected", ErrInvalidCreds)
	if !Is(err, ErrInvalidCreds) {
		t.Error("wrapped sentinel not visible to Is")
	}
	if Is(err, ErrSchemaMismatch) {
		t.Error("Is matched an unrelated sentinel")
	}

	var wrapped ErrorWrapper
	if !As(err.AsError(), &wrapped) || wrapped.Origin != "amizone.call" {
		t.Errorf("As failed: %+v", wrapped)
	}
}
