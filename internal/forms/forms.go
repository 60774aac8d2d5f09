// Package forms validates newsletter and contact submissions and forwards them
// to the spreadsheet webhook.
package forms

import (
	"regexp"
	"strings"
)

// EmailPattern is the shape an address must have after trimming and lower-casing.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	CodeMissingEmail  = "missing-email"
	CodeInvalidEmail  = "invalid-email"
	CodeMissingFields = "missing-fields"
)

// ValidationError reports which input was rejected. Code is safe to put in a
// redirect query string; Message is safe to show to the user.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Submission is a form ready to be forwarded.
type Submission interface {
	Action() string
}

// Newsletter is a signup request.
type Newsletter struct {
	Email string `json:"email"`
}

func (Newsletter) Action() string { return "newsletter" }

// Normalize trims and lower-cases the address.
func (n Newsletter) Normalize() Newsletter {
	n.Email = normalizeEmail(n.Email)
	return n
}

// Validate checks the address as submitted: only an empty value is missing,
// anything else must match EmailPattern once normalized.
func (n Newsletter) Validate() error {
	if n.Email == "" {
		return &ValidationError{Code: CodeMissingEmail, Message: "Email is required"}
	}
	if !EmailPattern.MatchString(normalizeEmail(n.Email)) {
		return &ValidationError{Code: CodeInvalidEmail, Message: "Invalid email address"}
	}
	return nil
}

// Contact is a message from the contact page. Every field is required.
type Contact struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	InquiryType string `json:"inquiryType"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

func (Contact) Action() string { return "contact" }

func (c Contact) Normalize() Contact {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = normalizeEmail(c.Email)
	c.InquiryType = strings.TrimSpace(c.InquiryType)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
	return c
}

// Validate expects a normalized value.
func (c Contact) Validate() error {
	if c.Name == "" || c.Email == "" || c.InquiryType == "" || c.Subject == "" || c.Message == "" {
		return &ValidationError{Code: CodeMissingFields, Message: "All fields are required"}
	}
	if !EmailPattern.MatchString(c.Email) {
		return &ValidationError{Code: CodeInvalidEmail, Message: "Invalid email address"}
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
