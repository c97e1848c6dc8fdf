// Package kerberos inspects and refreshes the local Kerberos credential cache
// by driving the klist and kinit tools.
package kerberos

import (
	"fmt"
	"runtime"
	"strings"
)

// Flavor selects the command-line dialect of the installed Kerberos tools.
type Flavor string

const (
	FlavorAuto    Flavor = "auto"
	FlavorMIT     Flavor = "mit"
	FlavorHeimdal Flavor = "heimdal"
)

// ParseFlavor parses a flavor name. The empty string means FlavorAuto.
func ParseFlavor(name string) (Flavor, error) {
	switch Flavor(strings.ToLower(strings.TrimSpace(name))) {
	case "", FlavorAuto:
		return FlavorAuto, nil
	case FlavorMIT:
		return FlavorMIT, nil
	case FlavorHeimdal:
		return FlavorHeimdal, nil
	default:
		return "", fmt.Errorf("unknown kerberos flavor %q", name)
	}
}

// Resolve maps FlavorAuto to the platform default: Heimdal on macOS, MIT elsewhere.
func (f Flavor) Resolve() Flavor {
	if f != FlavorAuto && f != "" {
		return f
	}
	if runtime.GOOS == "darwin" {
		return FlavorHeimdal
	}
	return FlavorMIT
}
