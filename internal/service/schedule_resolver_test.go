package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveOpenRangesWeekly(t *testing.T) {
	store := newFakeScheduleStore()
	store.addHours(1, 1, "09:00", "12:00")
	store.addHours(1, 1, "14:00", "17:00")
	store.addHours(1, 7, "10:00", "11:00")
	resolver := NewScheduleResolver(store, zap.NewNop())

	monday, err := resolver.ResolveOpenRanges(context.Background(), 1, mustDate("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, []model.OpenRange{
		{Start: mustTime("09:00"), End: mustTime("12:00")},
		{Start: mustTime("14:00"), End: mustTime("17:00")},
	}, monday)

	sunday, err := resolver.ResolveOpenRanges(context.Background(), 1, mustDate("2025-03-16"))
	require.NoError(t, err)
	assert.Equal(t, []model.OpenRange{{Start: mustTime("10:00"), End: mustTime("11:00")}}, sunday)

	tuesday, err := resolver.ResolveOpenRanges(context.Background(), 1, mustDate("2025-03-11"))
	require.NoError(t, err)
	assert.Empty(t, tuesday)
}

func TestResolveOpenRangesException(t *testing.T) {
	date := mustDate("2025-03-10")
	start, end := mustTime("15:00"), mustTime("16:30")

	tests := []struct {
		name      string
		exception *model.Exception
		want      []model.OpenRange
	}{
		{
			name:      "closed day ignores template",
			exception: &model.Exception{DoctorID: 1, Date: date, IsClosed: true, StartTime: &start, EndTime: &end},
			want:      []model.OpenRange{},
		},
		{
			name:      "open with times overrides template",
			exception: &model.Exception{DoctorID: 1, Date: date, StartTime: &start, EndTime: &end},
			want:      []model.OpenRange{{Start: start, End: end}},
		},
		{
			name:      "open without times yields nothing",
			exception: &model.Exception{DoctorID: 1, Date: date},
			want:      []model.OpenRange{},
		},
		{
			name:      "open with reversed times yields nothing",
			exception: &model.Exception{DoctorID: 1, Date: date, StartTime: &end, EndTime: &start},
			want:      []model.OpenRange{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeScheduleStore()
			store.addHours(1, 1, "09:00", "12:00")
			store.addException(tt.exception)
			resolver := NewScheduleResolver(store, zap.NewNop())

			got, err := resolver.ResolveOpenRanges(context.Background(), 1, date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOpenRangesSkipsEmptyTemplateRows(t *testing.T) {
	store := newFakeScheduleStore()
	store.addHours(1, 1, "12:00", "12:00")
	store.addHours(1, 1, "13:00", "14:00")
	resolver := NewScheduleResolver(store, zap.NewNop())

	got, err := resolver.ResolveOpenRanges(context.Background(), 1, mustDate("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, []model.OpenRange{{Start: mustTime("13:00"), End: mustTime("14:00")}}, got)
}

func TestResolveOpenRangesStorageError(t *testing.T) {
	store := newFakeScheduleStore()
	store.err = errors.New("connection refused")
	resolver := NewScheduleResolver(store, zap.NewNop())

	_, err := resolver.ResolveOpenRanges(context.Background(), 1, mustDate("2025-03-10"))

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, store.err)
	assert.False(t, IsRejection(err))
}
