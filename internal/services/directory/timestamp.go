// Package directory queries Active Directory through the ldapsearch tool and
// decodes the values it returns.
package directory

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// NeverExpires is the directory's "infinite" sentinel for expiry attributes.
	NeverExpires uint64 = 0x7FFFFFFFFFFFFFFF

	// MustChange is the computed expiry of an account flagged to change its
	// password at next logon.
	MustChange uint64 = 0

	// ticksPerSecond is the number of 100ns directory ticks in one second.
	ticksPerSecond = 10_000_000

	// epochOffsetSeconds separates 1601-01-01 from 1970-01-01.
	epochOffsetSeconds = 11_644_473_600
)

// ToTime converts a directory timestamp (100ns ticks since 1601-01-01 UTC)
// into a UTC time, truncated to whole seconds. NeverExpires and MustChange must
// be handled by the caller.
func ToTime(raw uint64) time.Time {
	seconds := int64(raw / ticksPerSecond)
	return time.Unix(seconds-epochOffsetSeconds, 0).UTC()
}

// ParseTimestamp parses the textual form of a directory timestamp attribute.
func ParseTimestamp(value string) (uint64, error) {
	raw, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid directory timestamp %q: %w", value, err)
	}
	return raw, nil
}
