package kerberos

import (
	"errors"
	"fmt"

	krb5config "github.com/jcmturner/gokrb5/v8/config"
)

// DefaultKrb5Conf is the conventional location of the Kerberos configuration.
const DefaultKrb5Conf = "/etc/krb5.conf"

// DefaultRealm reads libdefaults.default_realm from a krb5.conf file.
// Unsupported directives such as include are tolerated.
func DefaultRealm(path string) (string, error) {
	cfg, err := krb5config.Load(path)
	if err != nil {
		var unsupported krb5config.UnsupportedDirective
		if !errors.As(err, &unsupported) || cfg == nil {
			return "", fmt.Errorf("parse krb5.conf: %w", err)
		}
	}

	realm := cfg.LibDefaults.DefaultRealm
	if realm == "" {
		return "", fmt.Errorf("no default_realm in %s", path)
	}
	return realm, nil
}
