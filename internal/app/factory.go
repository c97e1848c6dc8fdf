package app

import (
	"fmt"
	"log/slog"

	httpadapter "adpasswd/internal/adapters/http"
	"adpasswd/internal/domain"
	"adpasswd/internal/services/config"
	"adpasswd/internal/services/directory"
	"adpasswd/internal/services/filter"
	"adpasswd/internal/services/freshness"
	"adpasswd/internal/services/kerberos"
	"adpasswd/internal/services/locator"
	"adpasswd/internal/services/notify"
)

// webhookRateLimit caps outbound webhook posts per second.
const (
	webhookRateLimit = 1.0
	webhookBurst     = 3
)

// ServiceFactory builds the evaluation services from the effective configuration.
type ServiceFactory struct {
	runner   domain.CommandRunner
	fs       domain.FileSystemAdapter
	resolver domain.SRVResolver
	logger   *slog.Logger

	defaultRealm func(path string) (string, error)
}

// NewServiceFactory creates a factory sharing runner, fs and resolver.
func NewServiceFactory(
	runner domain.CommandRunner,
	fs domain.FileSystemAdapter,
	resolver domain.SRVResolver,
	logger *slog.Logger,
) *ServiceFactory {
	return &ServiceFactory{
		runner:       runner,
		fs:           fs,
		resolver:     resolver,
		logger:       logger,
		defaultRealm: kerberos.DefaultRealm,
	}
}

// ResolveIdentity fills in the realm from krb5.conf when none is configured
// and checks that a complete identity is available.
func (f *ServiceFactory) ResolveIdentity(cfg *config.Config) error {
	if cfg.Realm == "" {
		realm, err := f.defaultRealm(cfg.Tools.Krb5Conf)
		if err != nil {
			f.logger.Debug("No default realm available", "krb5Conf", cfg.Tools.Krb5Conf, "error", err)
		} else {
			f.logger.Debug("Using default realm from krb5.conf", "realm", realm)
			cfg.Realm = realm
		}
	}
	return config.RequireIdentity(cfg)
}

func (f *ServiceFactory) flavor(cfg *config.Config) (kerberos.Flavor, error) {
	flavor, err := kerberos.ParseFlavor(cfg.Tools.Flavor)
	if err != nil {
		return "", err
	}
	return flavor.Resolve(), nil
}

// TicketReader creates a klist reader for the configured credential cache.
func (f *ServiceFactory) TicketReader(cfg *config.Config) (*kerberos.KlistReader, error) {
	flavor, err := f.flavor(cfg)
	if err != nil {
		return nil, err
	}
	return kerberos.NewKlistReader(f.runner, f.logger,
		kerberos.WithKlistBinary(cfg.Tools.Klist),
		kerberos.WithKlistFlavor(flavor),
		kerberos.WithKlistCredentialCache(cfg.Tools.CCache),
		kerberos.WithKlistTimeout(cfg.Tools.Timeout),
	), nil
}

// Evaluator creates a freshness evaluator for the configured account using
// password for ticket acquisition. An empty password disables kinit.
func (f *ServiceFactory) Evaluator(cfg *config.Config, password string) (domain.FreshnessEvaluator, error) {
	if err := f.ResolveIdentity(cfg); err != nil {
		return nil, err
	}

	flavor, err := f.flavor(cfg)
	if err != nil {
		return nil, err
	}

	reader, err := f.TicketReader(cfg)
	if err != nil {
		return nil, err
	}

	requester := kerberos.NewKinitRequester(f.runner, f.fs, f.logger,
		kerberos.WithKinitBinary(cfg.Tools.Kinit),
		kerberos.WithKinitFlavor(flavor),
		kerberos.WithKinitCredentialCache(cfg.Tools.CCache),
		kerberos.WithKinitTimeout(cfg.Tools.KinitTimeout),
	)

	directoryClient := directory.NewLDAPSearchClient(f.runner, f.logger,
		directory.WithBinary(cfg.Tools.LDAPSearch),
		directory.WithTimeout(cfg.Tools.Timeout),
		directory.WithCredentialCache(cfg.Tools.CCache),
	)

	hostFilter, err := filter.New(cfg.ExcludeServers, f.logger)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude_servers: %w", err)
	}

	return freshness.NewEvaluator(
		cfg.Credential(password),
		reader,
		requester,
		locator.NewLocator(f.resolver, cfg.Tools.Timeout, f.logger),
		directoryClient,
		f.logger,
		freshness.WithAttribute(cfg.Check.Attribute),
		freshness.WithHostFilter(hostFilter),
	), nil
}

// Webhook creates the webhook reporter, or nil when no URL is configured.
func (f *ServiceFactory) Webhook(cfg *config.Config) domain.StatusReporter {
	if cfg.Notify.WebhookURL == "" {
		return nil
	}

	client := httpadapter.NewAdapter(cfg.Notify.Timeout, f.logger)
	client.SetRateLimit(webhookRateLimit, webhookBurst)

	return notify.NewWebhookReporter(client, cfg.Notify.WebhookURL, cfg.Credential("").Principal(), f.logger)
}
