// Package errors provides custom error types and utilities for adpasswd.
//
// This package provides error handling for various operations including:
// - External tool failures (klist, kinit, ldapsearch)
// - Service discovery and directory query errors
// - Configuration and validation errors
// - Webhook HTTP errors
// - Multi-error handling
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error categories for adpasswd operations
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNetwork        = errors.New("network error")
	ErrConfiguration  = errors.New("configuration error")
	ErrTool           = errors.New("external tool failed")
	ErrNoTicket       = errors.New("no ticket-granting ticket")
	ErrDiscovery      = errors.New("service discovery failed")
	ErrDirectoryQuery = errors.New("directory query failed")
)

// ToolError represents a failed invocation of an external command
type ToolError struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Tool)
	if e.ExitCode > 0 {
		msg = fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func (e *ToolError) Is(target error) bool {
	return errors.Is(target, ErrTool)
}

// NewToolError creates a new tool error
func NewToolError(tool string, exitCode int, stderr string, err error) *ToolError {
	return &ToolError{
		Tool:     tool,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      err,
	}
}

// IsTool checks if an error comes from an external tool invocation
func IsTool(err error) bool {
	return errors.Is(err, ErrTool)
}

// DiscoveryError represents a failed SRV lookup. NXDOMAIN, timeouts and
// transport failures all collapse into this one kind.
type DiscoveryError struct {
	Key string
	Err error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service discovery for '%s' failed: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("service discovery for '%s' failed", e.Key)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

func (e *DiscoveryError) Is(target error) bool {
	return errors.Is(target, ErrDiscovery)
}

// NewDiscoveryError creates a new discovery error
func NewDiscoveryError(key string, err error) *DiscoveryError {
	return &DiscoveryError{
		Key: key,
		Err: err,
	}
}

// IsDiscovery checks if an error is discovery-related
func IsDiscovery(err error) bool {
	return errors.Is(err, ErrDiscovery)
}

// DirectoryQueryError represents a failed search against one directory server
type DirectoryQueryError struct {
	Server string
	Filter string
	Err    error
}

func (e *DirectoryQueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory query '%s' on server '%s' failed: %v", e.Filter, e.Server, e.Err)
	}
	return fmt.Sprintf("directory query '%s' on server '%s' failed", e.Filter, e.Server)
}

func (e *DirectoryQueryError) Unwrap() error {
	return e.Err
}

func (e *DirectoryQueryError) Is(target error) bool {
	return errors.Is(target, ErrDirectoryQuery)
}

// NewDirectoryQueryError creates a new directory query error
func NewDirectoryQueryError(server, filter string, err error) *DirectoryQueryError {
	return &DirectoryQueryError{
		Server: server,
		Filter: filter,
		Err:    err,
	}
}

// IsDirectoryQuery checks if an error is directory-query-related
func IsDirectoryQuery(err error) bool {
	return errors.Is(err, ErrDirectoryQuery)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrConfiguration)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, value, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// IsConfiguration checks if an error is configuration-related
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidInput)
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IsValidation checks if an error is validation-related
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// HTTPError represents an HTTP-related error
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d %s %s: %s", e.StatusCode, e.Method, e.URL, e.Message)
	}
	return fmt.Sprintf("HTTP %d %s %s", e.StatusCode, e.Method, e.URL)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return errors.Is(target, ErrNotFound)
	case e.StatusCode == http.StatusBadRequest:
		return errors.Is(target, ErrInvalidInput)
	case e.StatusCode >= http.StatusInternalServerError:
		return errors.Is(target, ErrNetwork)
	default:
		return false
	}
}

// NewHTTPError creates a new HTTP error
func NewHTTPError(statusCode int, method, url, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Method:     method,
		URL:        url,
		Message:    message,
	}
}

// NewHTTPErrorWithCause creates a new HTTP error with an underlying cause
func NewHTTPErrorWithCause(statusCode int, method, url, message string, err error) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Method:     method,
		URL:        url,
		Message:    message,
		Err:        err,
	}
}

// IsHTTPStatus checks if an error represents a specific HTTP status
func IsHTTPStatus(err error, statusCode int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == statusCode
	}
	return false
}

// MultiError represents multiple errors that occurred together
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.Errors[0].Error(), len(e.Errors)-1)
}

func (e *MultiError) Unwrap() []error {
	return e.Errors
}

func (e *MultiError) Is(target error) bool {
	for _, err := range e.Errors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (e *MultiError) As(target any) bool {
	for _, err := range e.Errors {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}

// NewMultiError creates a new multi-error from a slice of errors
func NewMultiError(errs []error) *MultiError {
	var filteredErrors []error
	for _, err := range errs {
		if err != nil {
			filteredErrors = append(filteredErrors, err)
		}
	}
	return &MultiError{Errors: filteredErrors}
}

// Join creates a MultiError from multiple errors, filtering out nils
func Join(errs ...error) error {
	var nonNilErrors []error
	for _, err := range errs {
		if err != nil {
			nonNilErrors = append(nonNilErrors, err)
		}
	}

	if len(nonNilErrors) == 0 {
		return nil
	}
	if len(nonNilErrors) == 1 {
		return nonNilErrors[0]
	}

	return NewMultiError(nonNilErrors)
}

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || IsHTTPStatus(err, http.StatusNotFound)
}

// IsNetwork checks if an error is network-related
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
