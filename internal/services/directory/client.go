package directory

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"regexp"
	"time"

	"adpasswd/internal/domain"
	apperrors "adpasswd/internal/errors"
)

// DefaultTimeout bounds a single ldapsearch invocation.
const DefaultTimeout = 5 * time.Second

// attributeLine matches "name: value" and base64 "name:: value" LDIF lines.
var attributeLine = regexp.MustCompile(`^([\w-]+)(::?) ?(.*)$`)

// LDAPSearchClient searches the directory by running ldapsearch with a
// GSSAPI bind, authenticating with the ticket in the credential cache.
type LDAPSearchClient struct {
	runner  domain.CommandRunner
	binary  string
	timeout time.Duration
	env     []string
	logger  *slog.Logger
}

// Option configures an LDAPSearchClient.
type Option func(*LDAPSearchClient)

// WithBinary overrides the ldapsearch executable.
func WithBinary(binary string) Option {
	return func(c *LDAPSearchClient) {
		c.binary = binary
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *LDAPSearchClient) {
		c.timeout = timeout
	}
}

// WithCredentialCache points ldapsearch at a specific Kerberos credential cache.
func WithCredentialCache(ccache string) Option {
	return func(c *LDAPSearchClient) {
		if ccache != "" {
			c.env = []string{"KRB5CCNAME=" + ccache}
		}
	}
}

// NewLDAPSearchClient creates a directory client backed by ldapsearch.
func NewLDAPSearchClient(runner domain.CommandRunner, logger *slog.Logger, opts ...Option) *LDAPSearchClient {
	c := &LDAPSearchClient{
		runner:  runner,
		binary:  "ldapsearch",
		timeout: DefaultTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs one filtered attribute search against server.
func (c *LDAPSearchClient) Search(
	ctx context.Context,
	server, baseDN, filter string,
	attributes []string,
) (domain.DirectoryRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{
		"-Q", "-N", "-LLL",
		"-o", "ldif-wrap=no",
		"-H", "ldap://" + server,
		"-b", baseDN,
		filter,
	}
	args = append(args, attributes...)

	c.logger.DebugContext(ctx, "Searching directory",
		"server", server,
		"base_dn", baseDN,
		"filter", filter,
		"attributes", attributes)

	output, err := c.runner.Run(ctx, domain.Command{
		Name: c.binary,
		Args: args,
		Env:  c.env,
	})
	if err != nil {
		return nil, apperrors.NewDirectoryQueryError(server, filter, err)
	}

	record := ParseRecord(output)
	c.logger.DebugContext(ctx, "Directory search completed", "server", server, "attributes", len(record))
	return record, nil
}

// ParseRecord folds ldapsearch output into a record. Blank lines, comments and
// anything else not shaped like "name: value" are ignored; the last occurrence
// of a repeated attribute wins.
func ParseRecord(output []byte) domain.DirectoryRecord {
	record := domain.DirectoryRecord{}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimRight(scanner.Bytes(), "\r")
		match := attributeLine.FindSubmatch(line)
		if match == nil {
			continue
		}

		key, value := string(match[1]), string(match[3])
		if string(match[2]) == "::" {
			if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
				value = string(decoded)
			}
		}
		record[key] = value
	}

	return record
}
