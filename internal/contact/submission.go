// Package contact implements the contact-form endpoint: validate the inbound
// submission, render it as an email, and hand it to the outbound mailer.
package contact

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"lucavisser.dev/portfolio/internal/prefs"
)

// Submission is the inbound contact-form payload. It is transient: validated,
// rendered into an email, never persisted.
type Submission struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Message          string `json:"message" validate:"required"`
	Company          string `json:"company,omitempty"`
	Subject          string `json:"subject,omitempty"`
	PreferredContact string `json:"preferredContact,omitempty"`
	ProjectType      string `json:"projectType,omitempty"`
	Budget           string `json:"budget,omitempty"`
	Timeline         string `json:"timeline,omitempty"`
	ViewMode         string `json:"viewMode,omitempty"`
}

// Validation errors, surfaced verbatim in the 400 response body.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email address")
)

var validate = validator.New()

// Validate checks the submission fail-fast: missing required fields win over
// a malformed email address.
func (s *Submission) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrMissingFields
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}
	return ErrInvalidEmail
}

// Mode normalizes the submission's view mode; anything other than
// "freelance" is treated as the professional audience for subject purposes.
func (s *Submission) Mode() prefs.ViewMode {
	if s.ViewMode == string(prefs.ModeFreelance) {
		return prefs.ModeFreelance
	}
	return prefs.ModeProfessional
}
