package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"07:00", false},
		{"23:59", false},
		{"00:00", false},
		{"24:00", true},
		{"12:60", true},
		{"7:00:00", true},
		{"noon", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 6, 2, 9, 5, 45, 0, time.UTC))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 450, TimeString("07:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("07:00").IsBefore("07:01"))
	assert.False(t, TimeString("07:00").IsBefore("07:00"))
	assert.True(t, TimeString("22:00").IsAfter("07:00"))
}

func TestAddMinutes(t *testing.T) {
	got, err := TimeString("22:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:30"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	require.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	got, err := NewTimeStringFromMinutes(450)
	require.NoError(t, err)
	assert.Equal(t, TimeString("07:30"), got)

	_, err = NewTimeStringFromMinutes(24 * 60)
	require.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromMinutes(-1)
	require.ErrorIs(t, err, ErrInvalidTimeString)
}
