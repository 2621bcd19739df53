package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "07:00", want: "07:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "7:00", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "with seconds", input: "10:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input TimeString
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "07:00", want: 420},
		{input: "12:30", want: 750},
		{input: "23:59", want: 1439},
	}

	for _, tt := range tests {
		got, err := tt.input.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)

	// Перенос через полночь остается в пределах суток
	got, err = TimeString("23:50").AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:10"), got)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:30").IsAfter("09:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("14:30").OnDate(date, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC), got)

	// nil location означает UTC
	got, err = TimeString("08:00").OnDate(date, nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "HH:MM:SS"
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("07:00:00")))
	assert.Equal(t, TimeString("07:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 18, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("18:45"), ts)

	assert.Error(t, ts.Scan(12345))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
