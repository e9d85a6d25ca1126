package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-10 - понедельник
var notToday = time.Date(2025, 3, 3, 12, 0, 0, 0, testLoc)

func TestAvailableSlotsScenario(t *testing.T) {
	f := newBookingFixture(notToday)
	ctx := context.Background()
	date := mustDate("2025-03-10")

	slots, err := f.avail.AvailableSlots(ctx, testDoctorID, date)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:05", "09:10", "09:15"}, timesOf(slots))

	f.bookings.seed(testDoctorID, "2025-03-10", "09:05", "9000000001", 1, model.BookingStatusBooked)

	slots, err = f.avail.AvailableSlots(ctx, testDoctorID, date)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:10", "09:15"}, timesOf(slots))
}

func TestAvailableSlotsCancelledBookingFreesSlot(t *testing.T) {
	f := newBookingFixture(notToday)
	f.bookings.seed(testDoctorID, "2025-03-10", "09:00", "9000000001", 1, model.BookingStatusCancelled)
	f.bookings.seed(testDoctorID, "2025-03-10", "09:10", "9000000002", 2, model.BookingStatusCompleted)

	slots, err := f.avail.AvailableSlots(context.Background(), testDoctorID, mustDate("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:05", "09:15"}, timesOf(slots))
}

func TestAvailableSlotsMergesOverlappingRanges(t *testing.T) {
	f := newBookingFixture(notToday)
	f.schedule.addHours(testDoctorID, 1, "09:10", "09:30")
	f.schedule.addHours(testDoctorID, 1, "08:50", "09:00")

	slots, err := f.avail.AvailableSlots(context.Background(), testDoctorID, mustDate("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, []string{"08:50", "08:55", "09:00", "09:05", "09:10", "09:15", "09:20", "09:25"}, timesOf(slots))
}

func TestAvailableSlotsToday(t *testing.T) {
	f := newBookingFixture(time.Date(2025, 3, 10, 9, 7, 30, 0, testLoc))

	slots, err := f.avail.AvailableSlots(context.Background(), testDoctorID, mustDate("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:10", "09:15"}, timesOf(slots))
}

func TestAvailableSlotsIsIdempotent(t *testing.T) {
	f := newBookingFixture(notToday)
	f.bookings.seed(testDoctorID, "2025-03-10", "09:15", "9000000001", 1, model.BookingStatusBooked)
	ctx := context.Background()

	first, err := f.avail.AvailableSlots(ctx, testDoctorID, mustDate("2025-03-10"))
	require.NoError(t, err)
	second, err := f.avail.AvailableSlots(ctx, testDoctorID, mustDate("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailableSlotsNeverContainBookedTimes(t *testing.T) {
	f := newBookingFixture(notToday)
	f.schedule.addHours(testDoctorID, 1, "10:00", "12:00")
	for i, tm := range []string{"09:00", "10:00", "10:35", "11:55"} {
		f.bookings.seed(testDoctorID, "2025-03-10", tm, fmt.Sprintf("90000000%02d", i), i+1, model.BookingStatusBooked)
	}
	ctx := context.Background()
	date := mustDate("2025-03-10")

	slots, err := f.avail.AvailableSlots(ctx, testDoctorID, date)
	require.NoError(t, err)
	taken, err := f.bookings.ActiveTimes(ctx, testDoctorID, date)
	require.NoError(t, err)

	for _, tm := range taken {
		assert.NotContains(t, slots, tm)
	}
	assert.IsIncreasing(t, slots)
}

func TestAvailableSlotsClosedDay(t *testing.T) {
	f := newBookingFixture(notToday)
	f.schedule.addException(&model.Exception{DoctorID: testDoctorID, Date: mustDate("2025-03-10"), IsClosed: true})

	slots, err := f.avail.AvailableSlots(context.Background(), testDoctorID, mustDate("2025-03-10"))
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}
