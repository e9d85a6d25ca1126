package handlers

import (
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService    *service.UserService
	doctorService  *service.DoctorService
	bookingService *service.BookingService
	queueService   *service.QueueService
	stateManager   callbacktypes.StateManager
	clock          service.Clock
	logger         *zap.Logger

	// Общие зависимости с callback handlers для завершения диалога записи
	deps *callbacktypes.Handler
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{
		userService:    deps.UserService,
		doctorService:  deps.DoctorService,
		bookingService: deps.BookingService,
		queueService:   deps.QueueService,
		stateManager:   deps.StateManager,
		clock:          deps.Clock,
		logger:         deps.Logger,
		deps:           deps,
	}
}
