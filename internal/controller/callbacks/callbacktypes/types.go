package callbacktypes

import (
	"github.com/Freeeeeet/doctor_booking/internal/controller/state"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	"go.uber.org/zap"
)

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) state.UserState
	SetState(telegramID int64, state state.UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetInt64(telegramID int64, key string) (int64, bool)
	GetString(telegramID int64, key string) (string, bool)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService         *service.UserService
	DoctorService       *service.DoctorService
	AvailabilityService *service.AvailabilityService
	BookingService      *service.BookingService
	QueueService        *service.QueueService
	StateManager        StateManager
	Clock               service.Clock
	Logger              *zap.Logger

	// Сколько дней вперёд показывать при выборе даты приёма
	BookingHorizonDays int
}
