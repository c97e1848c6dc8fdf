// Package migrations handles configuration migrations between versions.
package migrations

import (
	"encoding/json"

	"adpasswd/internal/domain"
)

// LegacyConfig is the JSON configuration written by releases before 1.
type LegacyConfig struct {
	Realm    string `json:"realm"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// migrateFromLegacy converts the JSON configuration. The password is dropped.
func migrateFromLegacy(data []byte) (domain.Identity, bool, error) {
	var legacy LegacyConfig
	if err := json.Unmarshal(data, &legacy); err != nil {
		return domain.Identity{}, false, err
	}

	return domain.Identity{
		Realm:    legacy.Realm,
		Username: legacy.Username,
	}, legacy.Password != "", nil
}
