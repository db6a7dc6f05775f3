package store_test

import (
	"testing"

	"github.com/serroba/portal-api/internal/ratelimit"
	"github.com/serroba/portal-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *ratelimit.Record
		wantErr bool
	}{
		{
			name: "valid record",
			raw:  `{"count":3,"resetAt":1700000060}`,
			want: &ratelimit.Record{Count: 3, ResetAt: 1700000060},
		},
		{
			name: "zero count is valid",
			raw:  `{"count":0,"resetAt":1700000060}`,
			want: &ratelimit.Record{Count: 0, ResetAt: 1700000060},
		},
		{
			name:    "not json",
			raw:     `garbage`,
			wantErr: true,
		},
		{
			name:    "negative count",
			raw:     `{"count":-1,"resetAt":1700000060}`,
			wantErr: true,
		},
		{
			name:    "missing reset",
			raw:     `{"count":1}`,
			wantErr: true,
		},
		{
			name:    "wrong field type",
			raw:     `{"count":"1","resetAt":1700000060}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.DecodeRecord([]byte(tt.raw))

			if tt.wantErr {
				assert.ErrorIs(t, err, store.ErrMalformedRecord)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
