package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "запись"},
		{2, "записи"},
		{4, "записи"},
		{5, "записей"},
		{11, "записей"},
		{12, "записей"},
		{21, "запись"},
		{22, "записи"},
		{0, "записей"},
		{111, "записей"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeBookings(tt.count), "count %d", tt.count)
	}

	assert.Equal(t, "человека", PluralizePeople(3))
	assert.Equal(t, "минут", PluralizeMinutes(15))
	assert.Equal(t, "минута", PluralizeMinutes(1))
	assert.Equal(t, "слотов", PluralizeSlots(48))
}

func TestFormatDayButton(t *testing.T) {
	today := model.Date{Year: 2025, Month: time.March, Day: 10} // понедельник

	assert.Equal(t, "Сегодня", FormatDayButton(today, today))
	assert.Equal(t, "Завтра", FormatDayButton(today.AddDays(1), today))
	assert.Equal(t, "Ср 12.03", FormatDayButton(today.AddDays(2), today))
	assert.Equal(t, "Вс 16.03", FormatDayButton(today.AddDays(6), today))
}

func TestFormatDateWithWeekday(t *testing.T) {
	assert.Equal(t, "Пн, 10.03.2025", FormatDateWithWeekday(model.Date{Year: 2025, Month: time.March, Day: 10}))
	assert.Equal(t, "Вс, 16.03.2025", FormatDateWithWeekday(model.Date{Year: 2025, Month: time.March, Day: 16}))
}

func TestGetBookingStatusDisplay(t *testing.T) {
	assert.Equal(t, "На приёме", GetBookingStatusDisplay(model.BookingStatusRunning).Text)
	assert.Equal(t, "❌", GetBookingStatusDisplay(model.BookingStatusCancelled).Emoji)
	assert.Equal(t, "Неизвестно", GetBookingStatusDisplay("lost").Text)
}

func TestFormatQueueStatus(t *testing.T) {
	doctor := &model.Doctor{ID: 1, Name: "Dr. Rao", Specialty: "ENT"}
	loc := time.FixedZone("IST", 5*3600+1800)
	queue := &model.QueueStatus{
		DoctorID:     1,
		Date:         model.Date{Year: 2025, Month: time.March, Day: 10},
		NextNo:       4,
		TotalWaiting: 5,
		Position: &model.QueuePosition{
			YourNo:      7,
			PeopleAhead: 3,
			ETAMinutes:  15,
			ETATime:     time.Date(2025, 3, 10, 10, 15, 0, 0, loc),
		},
	}

	text := FormatQueueStatus(doctor, queue)

	assert.Contains(t, text, "Dr. Rao (ENT)")
	assert.Contains(t, text, "Сейчас принимают номер: <b>4</b>")
	assert.Contains(t, text, "Ожидают приёма: 5 человек")
	assert.Contains(t, text, "Ваш номер: <b>7</b>")
	assert.Contains(t, text, "Перед вами: 3 человека")
	assert.Contains(t, text, "через 15 минут (около 10:15)")
}

func TestFormatQueueStatusNobodyAhead(t *testing.T) {
	queue := &model.QueueStatus{
		Date:     model.Date{Year: 2025, Month: time.March, Day: 10},
		NextNo:   7,
		Position: &model.QueuePosition{YourNo: 7},
	}

	text := FormatQueueStatus(&model.Doctor{Name: "Dr. Rao"}, queue)

	assert.Contains(t, text, "Перед вами никого нет")
	assert.NotContains(t, text, "Ориентировочно")
}

func TestFormatPatientBookings(t *testing.T) {
	assert.Contains(t, FormatPatientBookings(&model.PatientBookings{}), "нет записей")

	upcoming := &model.Booking{
		DoctorID:   3,
		Date:       model.Date{Year: 2025, Month: time.March, Day: 11},
		Time:       model.NewTimeOfDay(9, 30),
		SequenceNo: 2,
		Status:     model.BookingStatusBooked,
	}
	past := &model.Booking{
		DoctorID:   3,
		Date:       model.Date{Year: 2025, Month: time.March, Day: 1},
		Time:       model.NewTimeOfDay(11, 0),
		SequenceNo: 5,
		Status:     model.BookingStatusCompleted,
		Doctor:     &model.Doctor{Name: "Dr. <Iyer>"},
	}

	text := FormatPatientBookings(&model.PatientBookings{
		Upcoming: []*model.Booking{upcoming},
		Past:     []*model.Booking{past},
	})

	assert.Contains(t, text, "11.03.2025 09:30, №2")
	assert.Contains(t, text, "Врач #3")
	assert.Contains(t, text, "Dr. &lt;Iyer&gt;")
	assert.Contains(t, text, "Приём завершён")
}

func TestFormatDaySheet(t *testing.T) {
	doctor := &model.Doctor{Name: "Dr. Rao"}
	queue := &model.QueueStatus{Date: model.Date{Year: 2025, Month: time.March, Day: 10}, CurrentRunningNo: 1, NextNo: 2, TotalWaiting: 1}

	empty := FormatDaySheet(doctor, queue, nil)
	assert.Contains(t, empty, "записей нет")
	assert.Contains(t, empty, "Принято до №1 | ▶️ следующий: 2 | 👥 ожидают: 1")

	text := FormatDaySheet(doctor, queue, []*model.Booking{
		{SequenceNo: 1, Time: model.NewTimeOfDay(9, 0), PatientName: "Asha", PatientPhone: "9876543210", Status: model.BookingStatusCompleted},
		{SequenceNo: 2, Time: model.NewTimeOfDay(9, 5), PatientName: "Ravi", PatientPhone: "9123456789", Status: model.BookingStatusBooked},
	})

	assert.Contains(t, text, "✅ <b>№1</b> 09:00 Asha, 9876543210")
	assert.Contains(t, text, "🕐 <b>№2</b> 09:05 Ravi, 9123456789")
}
