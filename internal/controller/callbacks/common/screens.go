package common

import (
	"fmt"
	"html"

	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/doctor_booking/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	"github.com/go-telegram/bot/models"
)

const (
	// SlotsPageSize слотов на одной странице выбора времени
	SlotsPageSize = 40
	slotsPerRow   = 4
	daysPerRow    = 3
)

// BuildCitiesScreen формирует экран выбора города
func BuildCitiesScreen(cities []string) (string, *models.InlineKeyboardMarkup) {
	if len(cities) == 0 {
		return "😔 Пока нет доступных врачей", keyboard.NewBuilder().AddBackToMainButton().Build()
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(cities))
	for _, city := range cities {
		buttons = append(buttons, keyboard.Button("📍 "+city, CityPrefix+city))
	}

	kb := keyboard.NewBuilder().Grid(buttons, 2).AddBackToMainButton().Build()
	return "🏙 <b>Запись к врачу</b>\n\nВыберите город:", kb
}

// BuildDoctorsScreen формирует экран выбора врача в городе
func BuildDoctorsScreen(city string, doctors []*model.Doctor) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	for _, doctor := range doctors {
		b.Row(keyboard.Button("👨‍⚕️ "+formatting.FormatDoctorShort(doctor), fmt.Sprintf("%s%d", DoctorPrefix, doctor.ID)))
	}
	b.AddBackButton(BackToCities)

	if len(doctors) == 0 {
		return fmt.Sprintf("😔 В городе %s нет врачей, принимающих запись", html.EscapeString(city)), b.Build()
	}
	return fmt.Sprintf("📍 <b>%s</b>\n\nВыберите врача:", html.EscapeString(city)), b.Build()
}

// BuildDatesScreen формирует экран выбора даты приёма на days дней вперёд начиная с today
func BuildDatesScreen(doctor *model.Doctor, today model.Date, days int) (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, days)
	for i := 0; i < days; i++ {
		date := today.AddDays(i)
		buttons = append(buttons, keyboard.Button(formatting.FormatDayButton(date, today), DateData(doctor.ID, date)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, daysPerRow).
		AddBackButton(CityPrefix + doctor.City).
		Build()

	return formatting.FormatDoctorInfo(doctor) + "\n\n📅 Выберите дату:", kb
}

// BuildSlotsScreen формирует экран выбора времени с постраничным выводом
func BuildSlotsScreen(doctor *model.Doctor, date model.Date, slots []model.TimeOfDay, page int) (string, *models.InlineKeyboardMarkup) {
	back := fmt.Sprintf("%s%d", DoctorPrefix, doctor.ID)
	header := fmt.Sprintf("%s\n\n📅 %s\n", formatting.FormatDoctorInfo(doctor), formatting.FormatDateWithWeekday(date))

	if len(slots) == 0 {
		kb := keyboard.NewBuilder().AddBackButton(back).Build()
		return header + "\n😔 На эту дату нет свободного времени. Выберите другой день.", kb
	}

	window := keyboard.Page(len(slots), page, SlotsPageSize)

	buttons := make([]models.InlineKeyboardButton, 0, window.End-window.Start)
	for _, t := range slots[window.Start:window.End] {
		buttons = append(buttons, keyboard.Button(t.String(), SlotData(doctor.ID, date, t)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, slotsPerRow).
		AddPagination(SlotsPagePrefixFor(doctor.ID, date), window).
		AddBackButton(back).
		Build()

	text := fmt.Sprintf("%s🟢 Свободно: %d %s\n\nВыберите время:",
		header, len(slots), formatting.PluralizeSlots(len(slots)))
	return text, kb
}

// BuildPatientNamePrompt просит ввести имя пациента после выбора слота
func BuildPatientNamePrompt(doctor *model.Doctor, date model.Date, t model.TimeOfDay) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"%s\n\n📅 %s\n🕐 %s\n\n👤 Введите имя пациента:",
		formatting.FormatDoctorInfo(doctor),
		formatting.FormatDateWithWeekday(date),
		t,
	)
	return text, keyboard.NewBuilder().Row(keyboard.CancelButton(CancelDialog)).Build()
}

// BuildPatientPhonePrompt просит ввести телефон; сохранённый номер можно выбрать кнопкой
func BuildPatientPhonePrompt(savedPhone string) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	if savedPhone != "" {
		b.Row(keyboard.Button("📱 "+savedPhone, UseSavedPhone))
	}
	b.Row(keyboard.CancelButton(CancelDialog))
	return "📱 Введите номер телефона пациента:", b.Build()
}

// BuildMyBookingsScreen формирует список записей пациента с кнопками отмены
func BuildMyBookingsScreen(bookings *model.PatientBookings) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	for _, booking := range bookings.Upcoming {
		if booking.Status != model.BookingStatusBooked {
			continue
		}
		b.Row(keyboard.Button(
			fmt.Sprintf("❌ Отменить %s %s", formatting.FormatDate(booking.Date), booking.Time),
			fmt.Sprintf("%s%d", CancelBookingPrefix, booking.ID),
		))
	}
	b.AddBackToMainButton()
	return formatting.FormatPatientBookings(bookings), b.Build()
}

// BuildCancelConfirmScreen просит подтвердить отмену записи
func BuildCancelConfirmScreen(booking *model.Booking) (string, *models.InlineKeyboardMarkup) {
	text := "❓ <b>Отменить запись?</b>\n\n" + formatting.FormatBookingShort(booking)
	kb := keyboard.NewBuilder().
		AddConfirmCancel("✅ Да, отменить", fmt.Sprintf("%s%d", ConfirmCancelPrefix, booking.ID), MyBookings).
		Build()
	return text, kb
}

// BuildQueueScreen формирует экран очереди с кнопкой обновления
func BuildQueueScreen(doctor *model.Doctor, queue *model.QueueStatus) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔄 Обновить", QueueData(queue.DoctorID, queue.Date))).
		Build()
	return formatting.FormatQueueStatus(doctor, queue), kb
}

// BuildDaySheetScreen формирует список дня врача с действиями персонала
func BuildDaySheetScreen(doctor *model.Doctor, sheet *service.DaySheet) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	for _, booking := range sheet.Bookings {
		switch booking.Status {
		case model.BookingStatusBooked:
			b.Row(
				keyboard.Button(fmt.Sprintf("🩺 №%d принять", booking.SequenceNo), fmt.Sprintf("%s%d", StaffStartPrefix, booking.ID)),
				keyboard.Button(fmt.Sprintf("✅ №%d завершить", booking.SequenceNo), fmt.Sprintf("%s%d", StaffCompletePrefix, booking.ID)),
			)
		case model.BookingStatusRunning:
			b.Row(keyboard.Button(fmt.Sprintf("✅ №%d завершить", booking.SequenceNo), fmt.Sprintf("%s%d", StaffCompletePrefix, booking.ID)))
		}
	}
	b.Row(keyboard.Button("🔄 Обновить", StaffRefresh))

	return formatting.FormatDaySheet(doctor, sheet.Queue, sheet.Bookings), b.Build()
}
