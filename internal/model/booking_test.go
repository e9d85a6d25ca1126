package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	all := []BookingStatus{BookingStatusBooked, BookingStatusRunning, BookingStatusCompleted, BookingStatusCancelled}
	allowed := map[[2]BookingStatus]bool{
		{BookingStatusBooked, BookingStatusRunning}:    true,
		{BookingStatusBooked, BookingStatusCompleted}:  true,
		{BookingStatusBooked, BookingStatusCancelled}:  true,
		{BookingStatusRunning, BookingStatusCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]BookingStatus{from, to}], from.CanTransition(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatusBooked.IsTerminal())
	assert.False(t, BookingStatusRunning.IsTerminal())
}

func TestBookingStatusActive(t *testing.T) {
	assert.True(t, BookingStatusBooked.IsActive())
	assert.True(t, BookingStatusRunning.IsActive())
	assert.True(t, BookingStatusCompleted.IsActive())
	assert.False(t, BookingStatusCancelled.IsActive())

	assert.False(t, BookingStatus("pending").Valid())
}

func TestEventTypeForStatus(t *testing.T) {
	assert.Equal(t, EventBookingCompleted, EventTypeForStatus(BookingStatusCompleted))
	assert.Equal(t, EventBookingCancelled, EventTypeForStatus(BookingStatusCancelled))
	assert.Equal(t, EventBookingRunning, EventTypeForStatus(BookingStatusRunning))
	assert.Equal(t, EventBookingCreated, EventTypeForStatus(BookingStatusBooked))
}
