package filter

import (
	"testing"

	"adpasswd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExcludeFilter_Success(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
	}{
		{
			name:     "single pattern",
			patterns: []string{`^rodc\d+\.`},
		},
		{
			name:     "multiple patterns",
			patterns: []string{`^rodc\d+\.`, `\.branch\.corp\.example\.com$`, "legacy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			filter, err := NewExcludeFilter(tt.patterns, testutil.Logger())

			// Assert
			require.NoError(t, err)
			assert.NotNil(t, filter)
			assert.Len(t, filter.patterns, len(tt.patterns))
		})
	}
}

func TestNewExcludeFilter_EmptyPatterns(t *testing.T) {
	// Act
	filter, err := NewExcludeFilter(nil, testutil.Logger())

	// Assert
	require.Error(t, err)
	assert.Nil(t, filter)
	assert.Contains(t, err.Error(), "no patterns provided for exclude filter")
}

func TestNewExcludeFilter_InvalidRegex(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
	}{
		{
			name:     "invalid bracket",
			patterns: []string{"[invalid"},
		},
		{
			name:     "invalid quantifier",
			patterns: []string{"*invalid"},
		},
		{
			name:     "mixed valid and invalid",
			patterns: []string{"^dc1", "[invalid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			filter, err := NewExcludeFilter(tt.patterns, testutil.Logger())

			// Assert
			require.Error(t, err)
			assert.Nil(t, filter)
			assert.Contains(t, err.Error(), "invalid regex pattern")
		})
	}
}

func TestExcludeFilter_ShouldExclude(t *testing.T) {
	// Arrange
	patterns := []string{`^rodc\d+\.`, `\.branch\.corp\.example\.com$`}
	filter, err := NewExcludeFilter(patterns, testutil.Logger())
	require.NoError(t, err)

	tests := []struct {
		name        string
		host        string
		shouldMatch bool
	}{
		{
			name:        "read-only controller",
			host:        "rodc1.corp.example.com",
			shouldMatch: true,
		},
		{
			name:        "branch office controller",
			host:        "dc7.branch.corp.example.com",
			shouldMatch: true,
		},
		{
			name:        "primary controller",
			host:        "dc1.corp.example.com",
			shouldMatch: false,
		},
		{
			name:        "prefix without digits",
			host:        "rodc.corp.example.com",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			result := filter.ShouldExclude(tt.host)

			// Assert
			assert.Equal(t, tt.shouldMatch, result)
		})
	}
}

func TestExcludeFilter_ShouldExclude_CaseSensitive(t *testing.T) {
	// Arrange
	filter, err := NewExcludeFilter([]string{"^DC1"}, testutil.Logger())
	require.NoError(t, err)

	// Act & Assert
	assert.True(t, filter.ShouldExclude("DC1.corp.example.com"))
	assert.False(t, filter.ShouldExclude("dc1.corp.example.com"))
}

func TestNew(t *testing.T) {
	// Act
	noop, err := New(nil, testutil.Logger())

	// Assert
	require.NoError(t, err)
	assert.IsType(t, &NoOpFilter{}, noop)
	assert.False(t, noop.ShouldExclude("anything"))

	// Act
	exclude, err := New([]string{"^dc2"}, testutil.Logger())

	// Assert
	require.NoError(t, err)
	assert.IsType(t, &ExcludeFilter{}, exclude)
	assert.True(t, exclude.ShouldExclude("dc2.corp.example.com"))

	// Act
	_, err = New([]string{"("}, testutil.Logger())

	// Assert
	require.Error(t, err)
}

func TestNoOpFilter_ShouldExclude(t *testing.T) {
	filter := NewNoOpFilter()

	for _, host := range []string{"", "dc1.corp.example.com", "rodc1.corp.example.com"} {
		assert.False(t, filter.ShouldExclude(host))
	}
}
