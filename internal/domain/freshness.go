package domain

import (
	"context"
	"time"
)

// FreshnessKind tags the variant held by a FreshnessResult.
type FreshnessKind int

const (
	KindUnavailable FreshnessKind = iota
	KindNeverExpires
	KindExpiresIn
	KindMustChange
)

// UnavailableReason names the stage at which an evaluation gave up.
type UnavailableReason int

const (
	ReasonNone UnavailableReason = iota
	ReasonNoTicket
	ReasonDNSFailure
	ReasonDirectoryFailure
)

func (r UnavailableReason) String() string {
	switch r {
	case ReasonNoTicket:
		return "no_ticket"
	case ReasonDNSFailure:
		return "dns_failure"
	case ReasonDirectoryFailure:
		return "directory_failure"
	default:
		return "none"
	}
}

// FreshnessResult is the outcome of one password freshness evaluation.
type FreshnessResult struct {
	Kind      FreshnessKind
	Remaining time.Duration     // set for KindExpiresIn, negative once the password has expired
	Reason    UnavailableReason // set for KindUnavailable
	Err       error             // underlying cause for KindUnavailable, may be nil
}

// NeverExpires reports an account whose password does not expire.
func NeverExpires() FreshnessResult {
	return FreshnessResult{Kind: KindNeverExpires}
}

// ExpiresIn reports the time left before the password expires.
func ExpiresIn(remaining time.Duration) FreshnessResult {
	return FreshnessResult{Kind: KindExpiresIn, Remaining: remaining}
}

// MustChange reports an account whose password must be changed at next logon.
func MustChange() FreshnessResult {
	return FreshnessResult{Kind: KindMustChange}
}

// Unavailable reports an evaluation that could not complete.
func Unavailable(reason UnavailableReason, err error) FreshnessResult {
	return FreshnessResult{Kind: KindUnavailable, Reason: reason, Err: err}
}

func (r FreshnessResult) String() string {
	switch r.Kind {
	case KindNeverExpires:
		return "NeverExpires"
	case KindExpiresIn:
		return "ExpiresIn(" + r.Remaining.String() + ")"
	case KindMustChange:
		return "MustChange"
	default:
		return "Unavailable(" + r.Reason.String() + ")"
	}
}

// FreshnessEvaluator runs one complete evaluation cycle.
type FreshnessEvaluator interface {
	Evaluate(ctx context.Context) FreshnessResult
}

// Level is the coarse health projection shown to users.
type Level int

const (
	LevelOK Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelOK:
		return "ok"
	case LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// Status is a classified FreshnessResult ready for presentation.
type Status struct {
	Level     Level
	Message   string
	Result    FreshnessResult
	CheckedAt time.Time
	Duration  time.Duration // wall time spent evaluating
}

// StatusReporter receives the status of every evaluation cycle.
type StatusReporter interface {
	Report(ctx context.Context, status Status) error
}
