package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/doctor_booking/internal/model"
)

// ========================
// Callback Data Patterns
// ========================

// Навигация пациента по записи к врачу
const (
	BackToCities    = "back_to_cities"
	CityPrefix      = "city:"       // city:<название>
	DoctorPrefix    = "doctor:"     // doctor:<doctor_id>
	DatePrefix      = "date:"       // date:<doctor_id>:<YYYY-MM-DD>
	SlotsPagePrefix = "slots_page:" // slots_page:<doctor_id>:<YYYY-MM-DD>:<page>
	SlotPrefix      = "slot:"       // slot:<doctor_id>:<YYYY-MM-DD>:<минуты от полуночи>
	UseSavedPhone   = "use_saved_phone"
	CancelDialog    = "cancel_dialog"
)

// Записи и очередь пациента
const (
	CancelBookingPrefix = "cancel_booking:" // cancel_booking:<booking_id>
	ConfirmCancelPrefix = "confirm_cancel:" // confirm_cancel:<booking_id>
	MyBookings          = "my_bookings"
	QueuePrefix         = "queue:" // queue:<doctor_id>:<YYYY-MM-DD>
)

// Действия персонала
const (
	StaffStartPrefix    = "staff_start:"    // staff_start:<booking_id>
	StaffCompletePrefix = "staff_complete:" // staff_complete:<booking_id>
	StaffRefresh        = "staff_refresh"
)

// Noop callback кнопок без действия
const Noop = keyboard.NoopData

// DoctorDay врач и дата из callback data
type DoctorDay struct {
	DoctorID int64
	Date     model.Date
}

func (d DoctorDay) encode(prefix string) string {
	return fmt.Sprintf("%s%d:%s", prefix, d.DoctorID, d.Date)
}

// DateData callback выбора даты
func DateData(doctorID int64, date model.Date) string {
	return DoctorDay{DoctorID: doctorID, Date: date}.encode(DatePrefix)
}

// QueueData callback обновления очереди
func QueueData(doctorID int64, date model.Date) string {
	return DoctorDay{DoctorID: doctorID, Date: date}.encode(QueuePrefix)
}

// SlotsPagePrefixFor префикс пагинации слотов врача на дату
func SlotsPagePrefixFor(doctorID int64, date model.Date) string {
	return DoctorDay{DoctorID: doctorID, Date: date}.encode(SlotsPagePrefix) + ":"
}

// SlotData callback выбора слота
func SlotData(doctorID int64, date model.Date, t model.TimeOfDay) string {
	return fmt.Sprintf("%s%d:%s:%d", SlotPrefix, doctorID, date, int(t))
}

// ParseDoctorDay разбирает "<prefix><doctor_id>:<YYYY-MM-DD>"
func ParseDoctorDay(data string) (DoctorDay, error) {
	args, err := SplitCallback(data, 2)
	if err != nil {
		return DoctorDay{}, err
	}
	return parseDoctorDay(args[0], args[1])
}

func parseDoctorDay(rawID, rawDate string) (DoctorDay, error) {
	doctorID, err := ParseID(rawID)
	if err != nil {
		return DoctorDay{}, err
	}
	date, err := model.ParseDate(rawDate)
	if err != nil {
		return DoctorDay{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return DoctorDay{DoctorID: doctorID, Date: date}, nil
}

// ParseSlotsPage разбирает callback пагинации слотов
func ParseSlotsPage(data string) (DoctorDay, int, error) {
	args, err := SplitCallback(data, 3)
	if err != nil {
		return DoctorDay{}, 0, err
	}
	day, err := parseDoctorDay(args[0], args[1])
	if err != nil {
		return DoctorDay{}, 0, err
	}
	page, err := strconv.Atoi(args[2])
	if err != nil || page < 0 {
		return DoctorDay{}, 0, fmt.Errorf("%w: page %q", ErrInvalidFormat, args[2])
	}
	return day, page, nil
}

// ParseSlot разбирает callback выбора слота
func ParseSlot(data string) (DoctorDay, model.TimeOfDay, error) {
	args, err := SplitCallback(data, 3)
	if err != nil {
		return DoctorDay{}, 0, err
	}
	day, err := parseDoctorDay(args[0], args[1])
	if err != nil {
		return DoctorDay{}, 0, err
	}
	minutes, err := strconv.Atoi(args[2])
	if err != nil || minutes < 0 || minutes >= model.MinutesPerDay {
		return DoctorDay{}, 0, fmt.Errorf("%w: time %q", ErrInvalidFormat, args[2])
	}
	return day, model.TimeOfDay(minutes), nil
}

// ParseCity извлекает название города; в названии допускается двоеточие
func ParseCity(data string) (string, error) {
	city := strings.TrimSpace(strings.TrimPrefix(data, CityPrefix))
	if city == "" || city == data {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return city, nil
}
