package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronExpr(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"0 1 * * *", false},
		{"*/15 * * * *", false},
		{"0 9 * * 1-5", false},
		{"0 1 * *", true},
		{"61 * * * *", true},
		{"@every 5m", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := ValidateCronExpr(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNextCronTime(t *testing.T) {
	from := time.Date(2024, time.May, 10, 8, 30, 0, 0, time.UTC)

	next, err := NextCronTime("0 9 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC), next)

	next, err = NextCronTime("0 1 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 11, 1, 0, 0, 0, time.UTC), next)
}
