package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.March, Day: 10}, d)
	assert.Equal(t, "2025-03-10", d.String())

	for _, bad := range []string{"", "2025-3-10", "10.03.2025", "2025-02-30", "2025-13-01"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateCalendar(t *testing.T) {
	tests := []struct {
		date    string
		weekday int
	}{
		{"2025-03-10", 1},
		{"2025-03-15", 6},
		{"2025-03-16", 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.weekday, mustParseDate(t, tt.date).ISOWeekday(), tt.date)
	}

	d := mustParseDate(t, "2024-12-31")
	assert.Equal(t, "2025-01-01", d.AddDays(1).String())
	assert.Equal(t, "2024-12-30", d.AddDays(-1).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
}

func TestDateAtUsesLocalZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	d := mustParseDate(t, "2025-03-10")

	at := d.At(NewTimeOfDay(0, 30), ist)
	assert.Equal(t, "2025-03-09T19:00:00Z", at.UTC().Format(time.RFC3339))
	assert.Equal(t, d, DateOf(at))
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:05", want: 9*60 + 5},
		{in: "23:59", want: 23*60 + 59},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9:05", wantErr: true},
		{in: "09:5", wantErr: true},
		{in: "09-05", wantErr: true},
		{in: " 09:05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestDateAndTimeJSON(t *testing.T) {
	payload := struct {
		Date Date      `json:"date"`
		Time TimeOfDay `json:"time"`
	}{Date: Date{Year: 2025, Month: time.March, Day: 10}, Time: NewTimeOfDay(9, 5)}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-03-10","time":"09:05"}`, string(data))

	var decoded struct {
		Date Date      `json:"date"`
		Time TimeOfDay `json:"time"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"date":"2025-03-10","time":"9:5"}`), &decoded))
}

func mustParseDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}
