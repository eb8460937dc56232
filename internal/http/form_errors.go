package httpx

import (
	"errors"
	"net/http"

	"github.com/showcase-labs/showcase-console/internal/apiclient"
	apperrors "github.com/showcase-labs/showcase-console/internal/errors"
	"github.com/showcase-labs/showcase-console/internal/service"
)

// credentialError places a failed login or signup on a form field.
// Validation errors already carry their field. EMAIL_NOT_FOUND and
// PASSWORD_INCORRECT pick a field; any other rejection gets the generic
// submit-level message and keeps its 4xx status.
func credentialError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsValidation(err) || apperrors.IsCredentialRejected(err) {
		return err
	}

	backendMsg := apiclient.MessageOf(err)
	switch apiclient.CodeOf(err) {
	case apiclient.CodeEmailNotFound:
		return apperrors.CredentialRejected(FieldEmail, orDefault(backendMsg, MsgEmailNotFound), err)
	case apiclient.CodePasswordIncorrect:
		return apperrors.CredentialRejected(FieldPassword, orDefault(backendMsg, MsgWrongPassword), err)
	}

	if status := apiclient.StatusOf(err); status >= 400 && status < 500 {
		return apperrors.CredentialRejected("", MsgRejected, err)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, MsgGenericFailure)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// placeError records err on the form under its field, or the submit-level slot.
func placeError(form *FormView, err error) {
	field := apperrors.GetField(err)
	if field == "" {
		field = FieldForm
	}
	msg := apperrors.GetMessage(err)
	if apperrors.GetCode(err) == "" || msg == "" {
		msg = MsgGenericFailure
	}
	form.Errors[field] = msg
}

// errorStatus picks the response status for a placed error.
func errorStatus(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusUnprocessableEntity
	case apperrors.IsCredentialRejected(err):
		if s := apiclient.StatusOf(err); s >= 400 && s < 500 {
			return s
		}
		return http.StatusUnauthorized
	case apperrors.IsForbidden(err):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotAuthenticated), apperrors.IsUnauthenticated(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorCode is the machine-readable code in JSON error bodies.
func errorCode(err error) string {
	if code := apiclient.CodeOf(err); code != "" {
		return code
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	return string(apperrors.ErrCodeInternal)
}
