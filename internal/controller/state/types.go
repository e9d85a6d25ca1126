package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния диалога записи к врачу (слот уже выбран кнопками)
	StateBookingPatientName  UserState = "booking_patient_name"
	StateBookingPatientPhone UserState = "booking_patient_phone"

	// Ввод телефона для /mybookings и /queue, если он ещё не сохранён
	StateEnteringPhone UserState = "entering_phone"
)

// Ключи временных данных диалога
const (
	KeyDoctorID    = "doctor_id"
	KeyDate        = "date"
	KeyTime        = "time"
	KeyPatientName = "patient_name"
	KeyAfterPhone  = "after_phone" // Команда, которую нужно выполнить после ввода телефона
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{} // Временные данные для текущего диалога
	UpdatedAt time.Time
}
