package formatting

import "github.com/Freeeeeet/doctor_booking/internal/model"

// BookingStatusDisplay представляет отображение статуса записи
type BookingStatusDisplay struct {
	Emoji string
	Text  string
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса записи
func GetBookingStatusDisplay(status model.BookingStatus) BookingStatusDisplay {
	displays := map[model.BookingStatus]BookingStatusDisplay{
		model.BookingStatusBooked:    {"🕐", "Ожидает приёма"},
		model.BookingStatusRunning:   {"🩺", "На приёме"},
		model.BookingStatusCompleted: {"✅", "Приём завершён"},
		model.BookingStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return BookingStatusDisplay{"❓", "Неизвестно"}
}
