package httpx

import (
	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/showcase-labs/showcase-console/internal/service"
)

// PageData is what every template receives.
type PageData struct {
	Title string
	Page  string
	User  *domainauth.User
	Theme service.Theme
	Form  FormView
	Flash string
}

// FormView carries submitted values and per-field errors back into a form.
type FormView struct {
	Values map[string]string
	Errors map[string]string
	Roles  []domainauth.Role
}

func newFormView() FormView {
	return FormView{Values: map[string]string{}, Errors: map[string]string{}}
}

// Value returns the submitted value for key.
func (f FormView) Value(key string) string { return f.Values[key] }

// Error returns the error placed on key, or "".
func (f FormView) Error(key string) string { return f.Errors[key] }

// HasErrors reports whether any field, or the form itself, has an error.
func (f FormView) HasErrors() bool { return len(f.Errors) > 0 }
