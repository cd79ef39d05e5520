package utils

import (
	"errors"
	"fmt"
)

// Policy denials are sentinel errors so callers can tell "denied by policy"
// apart from a system fault with errors.Is.
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPlanNotFound         = errors.New("invalid plan type")
	ErrInvalidAmount        = errors.New("invalid payment amount")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrQuotaExhausted       = errors.New("token limit exceeded")
	ErrBudgetExceeded       = errors.New("request would exceed remaining token budget")
	ErrDatabaseError        = errors.New("database error")
)

type UpstreamKind string

const (
	UpstreamUnauthorized      UpstreamKind = "unauthorized"
	UpstreamRateLimited       UpstreamKind = "rate_limited"
	UpstreamBadRequest        UpstreamKind = "bad_request"
	UpstreamServerUnavailable UpstreamKind = "server_unavailable"
	UpstreamNetwork           UpstreamKind = "network"
	UpstreamTimeout           UpstreamKind = "timeout"
	UpstreamUnknown           UpstreamKind = "unknown"
)

// UpstreamError wraps a completion-provider failure with its classification.
type UpstreamError struct {
	Kind UpstreamKind
	Err  error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upstream error (%s)", e.Kind)
	}
	return fmt.Sprintf("upstream error (%s): %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(kind UpstreamKind, err error) *UpstreamError {
	return &UpstreamError{Kind: kind, Err: err}
}
