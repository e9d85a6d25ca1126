package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/doctor_booking/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNotStaff      = errors.New("user is not clinic staff")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNoPhone       = errors.New("patient phone is not set")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var (
		validationErr  *service.ValidationError
		pastErr        *service.PastTimeError
		duplicateErr   *service.DuplicatePatientBookingError
		unavailableErr *service.SlotUnavailableError
		raceErr        *service.SlotRaceError
	)

	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrNotStaff):
		return "❌ Эта функция доступна только персоналу клиники"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrDialogExpired):
		return "⌛ Диалог устарел. Начните запись заново: /doctors"
	case errors.Is(err, ErrNoPhone):
		return "📱 Сначала укажите номер телефона"
	case errors.As(err, &validationErr):
		return validationMessage(validationErr.Field)
	case errors.As(err, &pastErr):
		return "⏰ Это время уже прошло. Выберите другой слот."
	case errors.As(err, &duplicateErr):
		return "📋 У вас уже есть запись к этому врачу на этот день"
	case errors.As(err, &unavailableErr):
		return "🔴 Это время уже недоступно. Выберите другой слот."
	case errors.As(err, &raceErr):
		return "🔴 Это время только что заняли. Выберите другой слот."
	case errors.Is(err, service.ErrDoctorNotFound):
		return "❌ Врач не найден"
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Запись не найдена"
	case errors.Is(err, service.ErrInvalidTransition):
		return "❌ Статус записи уже не позволяет это действие"
	case errors.Is(err, context.DeadlineExceeded):
		return "⌛ Сервис не ответил вовремя. Попробуйте ещё раз."
	default:
		return "❌ Произошла ошибка"
	}
}

func validationMessage(field string) string {
	switch field {
	case "patient_name":
		return "❌ Укажите имя пациента"
	case "patient_phone":
		return "❌ Неверный номер телефона. Минимум 7 символов."
	case "date":
		return "❌ Неверная дата"
	case "time":
		return "❌ Неверное время"
	default:
		return "❌ Неверные данные записи"
	}
}
