// Package validate implements the field validation rules that every write
// must pass before it reaches the store. The editor runs these checks when a
// form is submitted; the store re-checks the name as a last line of defense.
package validate

import (
	"strings"

	"gitlab.com/dirk.krummacker/contacts-desk/internal/model"
)

// Reason codes carried by Error. The editor maps these to messages in the
// configured language.
const (
	ReasonNameRequired   = "name_required"
	ReasonEmailMalformed = "email_malformed"
)

// Error describes a field value that was rejected by validation. It is always
// recoverable: the edit form stays open and displays the mapped message.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Name rejects names that are empty or whitespace-only.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return &Error{Field: "name", Reason: ReasonNameRequired}
	}
	return nil
}

// Email accepts the empty string (the field is optional). A non-empty value
// must contain exactly one '@' with at least one character before it and a
// '.'-containing domain after it.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	at := strings.IndexByte(email, '@')
	if at < 1 || strings.IndexByte(email[at+1:], '@') >= 0 {
		return &Error{Field: "email", Reason: ReasonEmailMalformed}
	}
	if !strings.Contains(email[at+1:], ".") {
		return &Error{Field: "email", Reason: ReasonEmailMalformed}
	}
	return nil
}

// Fields checks everything the edit form may submit. Phone, company, tags and
// notes carry no format constraint.
func Fields(f model.Fields) error {
	if err := Name(f.Name); err != nil {
		return err
	}
	return Email(f.Email)
}
