package service

import (
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
)

// Clock источник текущего времени в локальной зоне развёртывания
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock возвращает часы, отдающие время в зоне loc
func NewSystemClock(loc *time.Location) Clock {
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// ClockFunc позволяет использовать функцию как Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// Today возвращает сегодняшнюю дату по часам clock
func Today(clock Clock) model.Date {
	return model.DateOf(clock.Now())
}
