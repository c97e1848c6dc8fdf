package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "adpasswd/internal/errors"
)

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its struct tags. Every violated rule is
// reported as a ValidationError.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, apperrors.NewValidationError(
			fe.Namespace(),
			fmt.Sprint(fe.Value()),
			fe.Tag(),
			fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		))
	}
	return apperrors.Join(errs...)
}

// RequireIdentity reports a configuration error unless both realm and
// username are set.
func RequireIdentity(cfg *Config) error {
	if cfg.Realm == "" {
		return apperrors.NewConfigurationError("realm", "", "realm is not configured, run 'adpasswd configure'", nil)
	}
	if cfg.Username == "" {
		return apperrors.NewConfigurationError("username", "", "username is not configured, run 'adpasswd configure'", nil)
	}
	return nil
}
