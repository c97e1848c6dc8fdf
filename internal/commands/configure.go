package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"adpasswd/internal/domain"
	apperrors "adpasswd/internal/errors"
)

// ConfigureCommand stores the account identity.
type ConfigureCommand struct {
	configRepo   domain.ConfigRepository
	defaultRealm func(path string) (string, error)
	logger       *slog.Logger
}

// NewConfigureCommand creates a new configure command. defaultRealm looks up
// the realm from a krb5.conf when none is given.
func NewConfigureCommand(
	configRepo domain.ConfigRepository,
	defaultRealm func(path string) (string, error),
	logger *slog.Logger,
) *ConfigureCommand {
	return &ConfigureCommand{
		configRepo:   configRepo,
		defaultRealm: defaultRealm,
		logger:       logger,
	}
}

// ConfigureRequest contains the parameters for the configure command.
// Nil ExcludeServers keeps the stored patterns.
type ConfigureRequest struct {
	Realm          string
	Username       string
	ExcludeServers []string
	Krb5Conf       string
}

// ConfigureResult contains the identity that was saved.
type ConfigureResult struct {
	Identity      domain.Identity
	RealmFromKrb5 bool
}

// Execute validates and saves the identity.
func (c *ConfigureCommand) Execute(ctx context.Context, req ConfigureRequest) (*ConfigureResult, error) {
	current, err := c.configRepo.GetIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current identity: %w", err)
	}

	identity := domain.Identity{
		Realm:          strings.TrimSpace(req.Realm),
		Username:       strings.TrimSpace(req.Username),
		ExcludeServers: req.ExcludeServers,
	}
	if identity.Username == "" {
		identity.Username = current.Username
	}
	if identity.ExcludeServers == nil {
		identity.ExcludeServers = current.ExcludeServers
	}

	result := &ConfigureResult{}
	if identity.Realm == "" {
		identity.Realm = current.Realm
	}
	if identity.Realm == "" {
		realm, err := c.defaultRealm(req.Krb5Conf)
		if err != nil {
			return nil, apperrors.NewConfigurationError("realm", "",
				"no realm given and none found in krb5.conf", err)
		}
		identity.Realm = realm
		result.RealmFromKrb5 = true
	}

	if identity.Username == "" {
		return nil, apperrors.NewConfigurationError("username", "", "username is required", nil)
	}
	if strings.Contains(identity.Username, "@") {
		return nil, apperrors.NewValidationError("username", identity.Username, "excludesall",
			"give the bare account name, the realm is added automatically")
	}

	c.logger.InfoContext(ctx, "Saving identity", "realm", identity.Realm, "username", identity.Username)

	if err := c.configRepo.SetIdentity(ctx, identity); err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save identity: %w", err)
	}

	result.Identity = identity
	return result, nil
}
