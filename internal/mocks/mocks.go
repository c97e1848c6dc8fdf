// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"net"
	"net/http"
	"os"

	"github.com/stretchr/testify/mock"

	"adpasswd/internal/domain"
)

// testingT is the subset of *testing.T the constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockCommandRunner mocks domain.CommandRunner.
type MockCommandRunner struct {
	mock.Mock
}

// NewMockCommandRunner creates a MockCommandRunner that asserts its expectations on cleanup.
func NewMockCommandRunner(t testingT) *MockCommandRunner {
	m := &MockCommandRunner{}
	register(t, &m.Mock)
	return m
}

func (m *MockCommandRunner) Run(ctx context.Context, cmd domain.Command) ([]byte, error) {
	args := m.Called(ctx, cmd)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

// MockTicketCacheReader mocks domain.TicketCacheReader.
type MockTicketCacheReader struct {
	mock.Mock
}

// NewMockTicketCacheReader creates a MockTicketCacheReader that asserts its expectations on cleanup.
func NewMockTicketCacheReader(t testingT) *MockTicketCacheReader {
	m := &MockTicketCacheReader{}
	register(t, &m.Mock)
	return m
}

func (m *MockTicketCacheReader) ListTickets(ctx context.Context) (domain.TicketSnapshot, error) {
	args := m.Called(ctx)
	snapshot, _ := args.Get(0).(domain.TicketSnapshot)
	return snapshot, args.Error(1)
}

// MockTicketRequester mocks domain.TicketRequester.
type MockTicketRequester struct {
	mock.Mock
}

// NewMockTicketRequester creates a MockTicketRequester that asserts its expectations on cleanup.
func NewMockTicketRequester(t testingT) *MockTicketRequester {
	m := &MockTicketRequester{}
	register(t, &m.Mock)
	return m
}

func (m *MockTicketRequester) RequestTicket(ctx context.Context, principal, password string) error {
	return m.Called(ctx, principal, password).Error(0)
}

// MockDirectorySearchClient mocks domain.DirectorySearchClient.
type MockDirectorySearchClient struct {
	mock.Mock
}

// NewMockDirectorySearchClient creates a MockDirectorySearchClient that asserts its expectations on cleanup.
func NewMockDirectorySearchClient(t testingT) *MockDirectorySearchClient {
	m := &MockDirectorySearchClient{}
	register(t, &m.Mock)
	return m
}

func (m *MockDirectorySearchClient) Search(
	ctx context.Context,
	server, baseDN, filter string,
	attributes []string,
) (domain.DirectoryRecord, error) {
	args := m.Called(ctx, server, baseDN, filter, attributes)
	record, _ := args.Get(0).(domain.DirectoryRecord)
	return record, args.Error(1)
}

// MockSRVResolver mocks domain.SRVResolver.
type MockSRVResolver struct {
	mock.Mock
}

// NewMockSRVResolver creates a MockSRVResolver that asserts its expectations on cleanup.
func NewMockSRVResolver(t testingT) *MockSRVResolver {
	m := &MockSRVResolver{}
	register(t, &m.Mock)
	return m
}

func (m *MockSRVResolver) LookupSRV(ctx context.Context, key string) ([]*net.SRV, error) {
	args := m.Called(ctx, key)
	records, _ := args.Get(0).([]*net.SRV)
	return records, args.Error(1)
}

// MockFreshnessEvaluator mocks domain.FreshnessEvaluator.
type MockFreshnessEvaluator struct {
	mock.Mock
}

// NewMockFreshnessEvaluator creates a MockFreshnessEvaluator that asserts its expectations on cleanup.
func NewMockFreshnessEvaluator(t testingT) *MockFreshnessEvaluator {
	m := &MockFreshnessEvaluator{}
	register(t, &m.Mock)
	return m
}

func (m *MockFreshnessEvaluator) Evaluate(ctx context.Context) domain.FreshnessResult {
	return m.Called(ctx).Get(0).(domain.FreshnessResult)
}

// MockStatusReporter mocks domain.StatusReporter.
type MockStatusReporter struct {
	mock.Mock
}

// NewMockStatusReporter creates a MockStatusReporter that asserts its expectations on cleanup.
func NewMockStatusReporter(t testingT) *MockStatusReporter {
	m := &MockStatusReporter{}
	register(t, &m.Mock)
	return m
}

func (m *MockStatusReporter) Report(ctx context.Context, status domain.Status) error {
	return m.Called(ctx, status).Error(0)
}

// MockPasswordReader mocks domain.PasswordReader.
type MockPasswordReader struct {
	mock.Mock
}

// NewMockPasswordReader creates a MockPasswordReader that asserts its expectations on cleanup.
func NewMockPasswordReader(t testingT) *MockPasswordReader {
	m := &MockPasswordReader{}
	register(t, &m.Mock)
	return m
}

func (m *MockPasswordReader) ReadPassword(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordReader) IsInteractive() bool {
	return m.Called().Bool(0)
}

// MockConfigRepository mocks domain.ConfigRepository.
type MockConfigRepository struct {
	mock.Mock
}

// NewMockConfigRepository creates a MockConfigRepository that asserts its expectations on cleanup.
func NewMockConfigRepository(t testingT) *MockConfigRepository {
	m := &MockConfigRepository{}
	register(t, &m.Mock)
	return m
}

func (m *MockConfigRepository) GetIdentity(ctx context.Context) (domain.Identity, error) {
	args := m.Called(ctx)
	identity, _ := args.Get(0).(domain.Identity)
	return identity, args.Error(1)
}

func (m *MockConfigRepository) SetIdentity(ctx context.Context, identity domain.Identity) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *MockConfigRepository) SaveConfig(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockConfigRepository) LoadConfig(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockFileSystemAdapter mocks domain.FileSystemAdapter.
type MockFileSystemAdapter struct {
	mock.Mock
}

// NewMockFileSystemAdapter creates a MockFileSystemAdapter that asserts its expectations on cleanup.
func NewMockFileSystemAdapter(t testingT) *MockFileSystemAdapter {
	m := &MockFileSystemAdapter{}
	register(t, &m.Mock)
	return m
}

func (m *MockFileSystemAdapter) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockFileSystemAdapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	return m.Called(path, data, perm).Error(0)
}

func (m *MockFileSystemAdapter) CreateTemp(dir, pattern string) (*os.File, error) {
	args := m.Called(dir, pattern)
	file, _ := args.Get(0).(*os.File)
	return file, args.Error(1)
}

func (m *MockFileSystemAdapter) MkdirAll(path string, perm os.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockFileSystemAdapter) Remove(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockFileSystemAdapter) Stat(path string) (os.FileInfo, error) {
	args := m.Called(path)
	info, _ := args.Get(0).(os.FileInfo)
	return info, args.Error(1)
}

func (m *MockFileSystemAdapter) Chmod(path string, perm os.FileMode) error {
	return m.Called(path, perm).Error(0)
}

func (m *MockFileSystemAdapter) UserHomeDir() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockFileSystemAdapter) TempDir() string {
	return m.Called().String(0)
}

// MockHTTPAdapter mocks domain.HTTPAdapter.
type MockHTTPAdapter struct {
	mock.Mock
}

// NewMockHTTPAdapter creates a MockHTTPAdapter that asserts its expectations on cleanup.
func NewMockHTTPAdapter(t testingT) *MockHTTPAdapter {
	m := &MockHTTPAdapter{}
	register(t, &m.Mock)
	return m
}

func (m *MockHTTPAdapter) Post(ctx context.Context, url string, payload any) (*http.Response, error) {
	args := m.Called(ctx, url, payload)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

// MockServiceLocator mocks domain.ServiceLocator.
type MockServiceLocator struct {
	mock.Mock
}

// NewMockServiceLocator creates a MockServiceLocator that asserts its expectations on cleanup.
func NewMockServiceLocator(t testingT) *MockServiceLocator {
	m := &MockServiceLocator{}
	register(t, &m.Mock)
	return m
}

func (m *MockServiceLocator) Locate(ctx context.Context, service, protocol, domainName string) ([]string, error) {
	args := m.Called(ctx, service, protocol, domainName)
	hosts, _ := args.Get(0).([]string)
	return hosts, args.Error(1)
}

// MockHostFilter mocks domain.HostFilter.
type MockHostFilter struct {
	mock.Mock
}

// NewMockHostFilter creates a MockHostFilter that asserts its expectations on cleanup.
func NewMockHostFilter(t testingT) *MockHostFilter {
	m := &MockHostFilter{}
	register(t, &m.Mock)
	return m
}

func (m *MockHostFilter) ShouldExclude(host string) bool {
	return m.Called(host).Bool(0)
}
