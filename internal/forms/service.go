package forms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Policy decides what the caller sees when forwarding fails.
type Policy int

const (
	// MaskFromUser logs integration failures and reports success; a well-formed
	// submission is always acknowledged.
	MaskFromUser Policy = iota
	// Surface returns integration failures to the caller.
	Surface
)

func (p Policy) String() string {
	if p == Surface {
		return "surface"
	}
	return "mask"
}

// ParsePolicy accepts "mask" (or empty) and "surface".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mask":
		return MaskFromUser, nil
	case "surface":
		return Surface, nil
	}
	return MaskFromUser, fmt.Errorf("unknown integration failure policy %q", s)
}

// Service validates submissions and hands them to a Forwarder.
type Service struct {
	forwarder Forwarder
	policy    Policy
	logger    *slog.Logger
}

func NewService(f Forwarder, policy Policy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{forwarder: f, policy: policy, logger: logger}
}

// Subscribe handles a newsletter signup. A *ValidationError means the input was
// rejected; any other error is an integration failure under the Surface policy.
func (s *Service) Subscribe(ctx context.Context, n Newsletter) error {
	if err := n.Validate(); err != nil {
		return err
	}
	n = n.Normalize()
	s.logger.InfoContext(ctx, "newsletter subscriber", "email", n.Email)
	return s.forward(ctx, n, slog.String("email", n.Email))
}

// Contact handles a contact form message; errors follow Subscribe.
func (s *Service) Contact(ctx context.Context, c Contact) error {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "contact submission", "email", c.Email, "inquiry_type", c.InquiryType)
	return s.forward(ctx, c, slog.String("email", c.Email))
}

func (s *Service) forward(ctx context.Context, sub Submission, attrs ...any) error {
	if s.forwarder == nil {
		s.logger.WarnContext(ctx, "webhook not configured, skipping forward", append(attrs, "action", sub.Action())...)
		return nil
	}

	err := s.forwarder.Forward(ctx, sub)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrWebhookNotConfigured):
		s.logger.WarnContext(ctx, "webhook not configured, skipping forward", append(attrs, "action", sub.Action())...)
		return nil
	}

	s.logger.ErrorContext(ctx, "forward submission failed",
		append(attrs, "action", sub.Action(), "error", err, "policy", s.policy.String())...)
	if s.policy == Surface {
		return fmt.Errorf("forward %s: %w", sub.Action(), err)
	}
	return nil
}

// AsValidation reports whether err rejected the user's input.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
