package freshness

import (
	"fmt"
	"math"
	"strings"
	"time"

	"adpasswd/internal/domain"
)

// DefaultWarnThreshold is how close to expiry a password must be before the
// status turns to warn.
const DefaultWarnThreshold = 14 * 24 * time.Hour

// Status messages for results that carry no duration.
const (
	MessageNeverExpires      = "Password never expires"
	MessageMustChange        = "Password must be changed at next logon"
	MessageNoTicket          = "Unable to get TGT from KDC"
	MessageDNSFailure        = "Unable to query DNS"
	MessageDirectoryFailure  = "Unable to query AD LDAP"
	messageUnknownFailure    = "Unable to check password expiry"
	messageExpiresInTemplate = "Password expires in %s"
	messageExpiredTemplate   = "Password expired %s ago"
)

// Classify projects a result onto a level and a user-facing message.
// A remaining time below threshold, including an already expired password,
// is a warning. CheckedAt is left for the caller to stamp.
func Classify(result domain.FreshnessResult, threshold time.Duration) domain.Status {
	status := domain.Status{Result: result}

	switch result.Kind {
	case domain.KindNeverExpires:
		status.Level = domain.LevelOK
		status.Message = MessageNeverExpires
	case domain.KindMustChange:
		status.Level = domain.LevelWarn
		status.Message = MessageMustChange
	case domain.KindExpiresIn:
		status.Level = domain.LevelOK
		if result.Remaining < threshold {
			status.Level = domain.LevelWarn
		}
		if result.Remaining < 0 {
			status.Message = fmt.Sprintf(messageExpiredTemplate, FormatRemaining(-result.Remaining))
		} else {
			status.Message = fmt.Sprintf(messageExpiresInTemplate, FormatRemaining(result.Remaining))
		}
	default:
		status.Level = domain.LevelError
		status.Message = unavailableMessage(result.Reason)
	}

	return status
}

func unavailableMessage(reason domain.UnavailableReason) string {
	switch reason {
	case domain.ReasonNoTicket:
		return MessageNoTicket
	case domain.ReasonDNSFailure:
		return MessageDNSFailure
	case domain.ReasonDirectoryFailure:
		return MessageDirectoryFailure
	default:
		return messageUnknownFailure
	}
}

// FormatRemaining renders a non-negative duration with its two most
// significant units, e.g. "13 days, 4 hours" or "45 minutes". The sign is
// ignored.
func FormatRemaining(d time.Duration) string {
	switch {
	case d == math.MinInt64:
		d = math.MaxInt64
	case d < 0:
		d = -d
	}

	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	var parts []string
	switch {
	case days > 0:
		parts = append(parts, plural(days, "day"))
		if hours > 0 {
			parts = append(parts, plural(hours, "hour"))
		}
	case hours > 0:
		parts = append(parts, plural(hours, "hour"))
		if minutes > 0 {
			parts = append(parts, plural(minutes, "minute"))
		}
	default:
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
