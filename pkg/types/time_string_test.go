package types

import (
	"encoding/json"
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
		{name: "hh:mm", input: "08:15", want: "08:15"},
		{name: "postgres time", input: "17:00:00", want: "17:00"},
		{name: "spaces", input: " 09:30 ", want: "09:30"},
		{name: "hour overflow", input: "24:00", wantErr: true},
		{name: "minute overflow", input: "10:60", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	start := TimeString("10:00")

	end, err := start.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), end)
	assert.Equal(t, 645, end.Minutes())

	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))
	assert.False(t, start.IsBefore(start))

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("16:45:00")))
	assert.Equal(t, TimeString("16:45"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:05"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_JSON(t *testing.T) {
	var payload struct {
		Start TimeString `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"11:15:00"}`), &payload))
	assert.Equal(t, TimeString("11:15"), payload.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"1115"}`), &payload))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	got := TimeString("14:30").OnDate(date, loc)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, loc), got)
}
