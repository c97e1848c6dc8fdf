package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"adpasswd/internal/domain"
	"adpasswd/internal/mocks"
	"adpasswd/internal/testutil"
)

func TestCheckCommand_Execute(t *testing.T) {
	tests := []struct {
		name      string
		result    domain.FreshnessResult
		threshold time.Duration
		level     domain.Level
		message   string
	}{
		{
			name:    "never expires",
			result:  domain.NeverExpires(),
			level:   domain.LevelOK,
			message: "Password never expires",
		},
		{
			name:      "inside threshold",
			result:    domain.ExpiresIn(5 * 24 * time.Hour),
			threshold: 14 * 24 * time.Hour,
			level:     domain.LevelWarn,
			message:   "Password expires in 5 days",
		},
		{
			name:      "outside custom threshold",
			result:    domain.ExpiresIn(5 * 24 * time.Hour),
			threshold: 2 * 24 * time.Hour,
			level:     domain.LevelOK,
			message:   "Password expires in 5 days",
		},
		{
			name:    "no ticket",
			result:  domain.Unavailable(domain.ReasonNoTicket, nil),
			level:   domain.LevelError,
			message: "Unable to get TGT from KDC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator := mocks.NewMockFreshnessEvaluator(t)
			reporter := mocks.NewMockStatusReporter(t)

			evaluator.On("Evaluate", mock.Anything).Return(tt.result).Once()
			reporter.On("Report", mock.Anything, mock.MatchedBy(func(s domain.Status) bool {
				return s.Level == tt.level && !s.CheckedAt.IsZero()
			})).Return(nil).Once()

			cmd := NewCheckCommand(evaluator, []domain.StatusReporter{reporter}, testutil.Logger())
			result := cmd.Execute(context.Background(), CheckRequest{WarnThreshold: tt.threshold})

			assert.Equal(t, tt.level, result.Status.Level)
			assert.Equal(t, tt.message, result.Status.Message)
			assert.Equal(t, tt.result, result.Status.Result)
		})
	}
}
