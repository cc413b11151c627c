package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		TransactionDate: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:              "0b6f2c1e-income",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token)

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, cursor.TransactionDate.Equal(decoded.TransactionDate))
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, cursor.ID, decoded.ID)
}

func TestDecodeTokenError(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		message string
	}{
		{"not base64", "this is not base64!", "base64 decode"},
		{"missing fields", base64.StdEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z")), "split"},
		{"empty id", base64.StdEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|2024-05-15T00:00:00Z|")), "split"},
		{"bad date", base64.StdEncoding.EncodeToString([]byte("yesterday|2024-05-15T00:00:00Z|id")), "transaction date parse"},
		{"bad created at", base64.StdEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|noon|id")), "created_at parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
