package domain

import (
	"context"
	"net"
)

// DirectoryRecord maps attribute names to values for one directory search.
type DirectoryRecord map[string]string

// DirectorySearchClient performs a single filtered attribute search against one server.
type DirectorySearchClient interface {
	Search(ctx context.Context, server, baseDN, filter string, attributes []string) (DirectoryRecord, error)
}

// SRVResolver resolves a fully formed service discovery key such as
// "_ldap._tcp.corp.example.com" into service records.
type SRVResolver interface {
	LookupSRV(ctx context.Context, key string) ([]*net.SRV, error)
}

// HostFilter decides whether a discovered directory host is skipped.
type HostFilter interface {
	ShouldExclude(host string) bool
}

// ServiceLocator returns the hosts offering a service within a DNS domain, in preference order.
type ServiceLocator interface {
	Locate(ctx context.Context, service, protocol, domain string) ([]string, error)
}
