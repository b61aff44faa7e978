package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"12h", 12 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"4w", 28 * 24 * time.Hour},
		{"3m", 90 * 24 * time.Hour},
		{"0d", 0},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "7", "d", "7y", "-1d", "1.5d", "7 d"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestSince(t *testing.T) {
	now := time.Unix(100000, 0)
	assert.Equal(t, int64(100000-3600), Since(now, time.Hour))
}
