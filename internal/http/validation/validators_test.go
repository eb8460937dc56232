package validation

import (
	"strings"
	"testing"
)

const errNameRequired = "Name is required."

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{name: "valid input", value: "valid"},
		{name: "empty string", value: "", wantErr: errNameRequired},
		{name: "whitespace only", value: "   ", wantErr: errNameRequired},
		{name: "too long", value: strings.Repeat("é", 11), wantErr: "Name cannot exceed 10 characters."},
		{name: "unicode at limit", value: strings.Repeat("é", 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Required("Name", 10)(tt.value); got != tt.wantErr {
				t.Errorf("Required() = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestPresent(t *testing.T) {
	if got := Present("Password")(" "); got != "" {
		t.Errorf("whitespace password should be accepted, got %q", got)
	}
	if got := Present("Password")(""); got != "Password is required." {
		t.Errorf("Present() = %q", got)
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"a@b.com", true},
		{" a@b.com ", true},
		{"", false},
		{"not-an-email", false},
		{"Ada <ada@example.com>", false},
	}
	for _, tt := range tests {
		got := Email("Email")(tt.value)
		if (got == "") != tt.ok {
			t.Errorf("Email(%q) = %q, want ok=%v", tt.value, got, tt.ok)
		}
	}
}

func TestOptionalHTTPURL(t *testing.T) {
	v := OptionalHTTPURL("Profile image", 64)
	if got := v(""); got != "" {
		t.Errorf("empty should pass, got %q", got)
	}
	if got := v("https://img.example.com/a.png"); got != "" {
		t.Errorf("https URL should pass, got %q", got)
	}
	if got := v("javascript:alert(1)"); got == "" {
		t.Error("non-http scheme should fail")
	}
	if got := v("https://" + strings.Repeat("a", 64)); got == "" {
		t.Error("overlong URL should fail")
	}
}

func TestOneOf(t *testing.T) {
	v := OneOf("Role", []string{"user", "developer", "admin"})
	if got := v(" Developer "); got != "" {
		t.Errorf("case-insensitive match failed: %q", got)
	}
	if got := v("root"); got == "" {
		t.Error("unknown option should fail")
	}
}

func TestFieldValidator(t *testing.T) {
	fv := New().
		Validate("email", "bad", Email("Email")).
		Validate("name", "", Required("Name", 10), Email("Name")).
		Validate("password", "pw", Present("Password"))

	if fv.Valid() {
		t.Fatal("expected errors")
	}
	errs := fv.Errors()
	if errs["name"] != errNameRequired {
		t.Errorf("first failing validator wins, got %q", errs["name"])
	}
	if _, ok := errs["password"]; ok {
		t.Error("password should be valid")
	}
	if len(errs) != 2 {
		t.Errorf("errors = %v", errs)
	}
}
