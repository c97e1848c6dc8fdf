package directory

import (
	"fmt"
	"strings"
)

// BaseDNFor guesses the base DN of a realm, e.g. "corp.example.com" becomes
// "dc=corp,dc=example,dc=com".
func BaseDNFor(realm string) string {
	labels := strings.Split(strings.TrimSuffix(realm, "."), ".")
	components := make([]string, 0, len(labels))
	for _, label := range labels {
		components = append(components, "dc="+label)
	}
	return strings.Join(components, ",")
}

// EscapeFilterValue escapes a value for use inside an LDAP search filter (RFC 4515).
func EscapeFilterValue(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '\\', '*', '(', ')', 0:
			fmt.Fprintf(&b, `\%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// AccountFilter matches the user object with the given sAMAccountName.
func AccountFilter(username string) string {
	return "(sAMAccountName=" + EscapeFilterValue(username) + ")"
}
