package validator

import (
	"strings"
	"testing"
)

type loginForm struct {
	Username string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
}

func TestValidate_Passes(t *testing.T) {
	rv := New()
	if err := rv.Validate(loginForm{Username: "alice", Email: "alice@warf.local"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ReadableFieldErrors(t *testing.T) {
	rv := New()
	err := rv.Validate(loginForm{Username: "al", Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Username must be at least 3 characters") {
		t.Fatalf("message %q lacks the min rule text", msg)
	}
	if !strings.Contains(msg, "Email must be a valid email address") {
		t.Fatalf("message %q lacks the email rule text", msg)
	}
	if strings.Contains(msg, "loginForm.") {
		t.Fatalf("message %q leaks the struct path", msg)
	}
}
