package service

import (
	"testing"
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSlots(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, testLoc)
	at := func(h, m, s int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
	}
	morning := model.OpenRange{Start: mustTime("09:00"), End: mustTime("09:20")}

	tests := []struct {
		name    string
		rng     model.OpenRange
		isToday bool
		now     time.Time
		want    []string
	}{
		{
			name: "other day keeps whole range",
			rng:  morning,
			now:  at(12, 0, 0),
			want: []string{"09:00", "09:05", "09:10", "09:15"},
		},
		{
			name:    "slot starting now is kept",
			rng:     morning,
			isToday: true,
			now:     at(9, 5, 0),
			want:    []string{"09:05", "09:10", "09:15"},
		},
		{
			name:    "one second later the slot is gone",
			rng:     morning,
			isToday: true,
			now:     at(9, 5, 1),
			want:    []string{"09:10", "09:15"},
		},
		{
			name:    "now rounds up to the grid",
			rng:     morning,
			isToday: true,
			now:     at(9, 2, 0),
			want:    []string{"09:05", "09:10", "09:15"},
		},
		{
			name:    "today before opening keeps whole range",
			rng:     morning,
			isToday: true,
			now:     at(8, 0, 0),
			want:    []string{"09:00", "09:05", "09:10", "09:15"},
		},
		{
			name:    "today after closing is empty",
			rng:     morning,
			isToday: true,
			now:     at(9, 16, 0),
			want:    []string{},
		},
		{
			name: "unaligned start rounds up",
			rng:  model.OpenRange{Start: mustTime("09:03"), End: mustTime("09:20")},
			now:  at(12, 0, 0),
			want: []string{"09:05", "09:10", "09:15"},
		},
		{
			name: "unaligned end is exclusive",
			rng:  model.OpenRange{Start: mustTime("09:00"), End: mustTime("09:11")},
			now:  at(12, 0, 0),
			want: []string{"09:00", "09:05", "09:10"},
		},
		{
			name: "range shorter than a slot after alignment",
			rng:  model.OpenRange{Start: mustTime("09:01"), End: mustTime("09:04")},
			now:  at(12, 0, 0),
			want: []string{},
		},
		{
			name: "range up to midnight",
			rng:  model.OpenRange{Start: mustTime("23:45"), End: model.TimeOfDay(model.MinutesPerDay)},
			now:  at(12, 0, 0),
			want: []string{"23:45", "23:50", "23:55"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(tt.rng, tt.isToday, tt.now, SlotGranularityMinutes)
			assert.Equal(t, tt.want, timesOf(got))
		})
	}
}

func TestGenerateSlotsDefaultsGranularity(t *testing.T) {
	rng := model.OpenRange{Start: mustTime("10:00"), End: mustTime("10:10")}
	got := GenerateSlots(rng, false, time.Now(), 0)
	assert.Equal(t, []string{"10:00", "10:05"}, timesOf(got))
}

func TestGenerateSlotsStaysOnGridWithinRange(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 17, 42, 0, testLoc)

	for start := 0; start < 3*60; start += 7 {
		for length := 1; length < 90; length += 11 {
			rng := model.OpenRange{Start: model.TimeOfDay(8*60 + start), End: model.TimeOfDay(8*60 + start + length)}

			for _, isToday := range []bool{false, true} {
				slots := GenerateSlots(rng, isToday, now, SlotGranularityMinutes)
				for i, slot := range slots {
					assert.Zero(t, int(slot)%SlotGranularityMinutes, "slot %s off grid", slot)
					assert.GreaterOrEqual(t, slot, rng.Start)
					assert.Less(t, slot, rng.End)
					if isToday {
						assert.GreaterOrEqual(t, int(slot), 10*60+18)
					}
					if i > 0 {
						assert.Equal(t, slots[i-1]+SlotGranularityMinutes, slot)
					}
				}
			}
		}
	}
}
