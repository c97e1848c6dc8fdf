package domain

import "log/slog"

// Credential identifies the Active Directory account being checked.
// The password is held in memory for one evaluation cycle and never persisted.
type Credential struct {
	Realm    string
	Username string
	Password string
}

// Principal returns the Kerberos principal used for ticket acquisition.
func (c Credential) Principal() string {
	return c.Username + "@" + c.Realm
}

// HasPassword reports whether a password is available for ticket acquisition.
func (c Credential) HasPassword() bool {
	return c.Password != ""
}

// LogValue implements slog.LogValuer so the password never reaches a log line.
func (c Credential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("realm", c.Realm),
		slog.String("username", c.Username),
		slog.Bool("password_set", c.HasPassword()),
	)
}
