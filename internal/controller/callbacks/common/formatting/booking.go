package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/doctor_booking/internal/model"
)

// FormatDoctorShort форматирует врача для списка
func FormatDoctorShort(doctor *model.Doctor) string {
	if doctor.Specialty == "" {
		return doctor.Name
	}
	return fmt.Sprintf("%s (%s)", doctor.Name, doctor.Specialty)
}

// FormatDoctorInfo форматирует карточку врача
func FormatDoctorInfo(doctor *model.Doctor) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👨‍⚕️ <b>%s</b>\n", html.EscapeString(doctor.Name))
	if doctor.Specialty != "" {
		fmt.Fprintf(&sb, "🩺 %s\n", html.EscapeString(doctor.Specialty))
	}
	if doctor.Hospital != "" {
		fmt.Fprintf(&sb, "🏥 %s", html.EscapeString(doctor.Hospital))
		if doctor.Department != "" {
			fmt.Fprintf(&sb, ", %s", html.EscapeString(doctor.Department))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "📍 %s", html.EscapeString(doctor.City))
	return sb.String()
}

func doctorLabel(booking *model.Booking) string {
	if booking.Doctor != nil {
		return html.EscapeString(FormatDoctorShort(booking.Doctor))
	}
	return fmt.Sprintf("Врач #%d", booking.DoctorID)
}

// FormatBookingConfirmation сообщение об успешной записи
func FormatBookingConfirmation(booking *model.Booking, doctor *model.Doctor) string {
	return fmt.Sprintf(
		"✅ <b>Вы записаны!</b>\n\n"+
			"%s\n\n"+
			"📅 %s\n"+
			"🕐 %s\n"+
			"🔢 Номер в очереди: <b>%d</b>\n"+
			"👤 %s\n\n"+
			"Проверить очередь: /queue",
		FormatDoctorInfo(doctor),
		FormatDateWithWeekday(booking.Date),
		booking.Time,
		booking.SequenceNo,
		html.EscapeString(booking.PatientName),
	)
}

// FormatBookingShort форматирует запись для списка записей пациента
func FormatBookingShort(booking *model.Booking) string {
	display := GetBookingStatusDisplay(booking.Status)
	return fmt.Sprintf(
		"%s %s %s, №%d\n   %s\n   %s",
		display.Emoji,
		FormatDate(booking.Date),
		booking.Time,
		booking.SequenceNo,
		doctorLabel(booking),
		display.Text,
	)
}

// FormatPatientBookings форматирует предстоящие и прошедшие записи пациента
func FormatPatientBookings(bookings *model.PatientBookings) string {
	if len(bookings.Upcoming) == 0 && len(bookings.Past) == 0 {
		return "📋 У вас пока нет записей.\n\nЗаписаться к врачу: /doctors"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>Предстоящие</b> (%d)\n\n", len(bookings.Upcoming))
	if len(bookings.Upcoming) == 0 {
		sb.WriteString("Нет предстоящих записей\n")
	}
	for _, b := range bookings.Upcoming {
		sb.WriteString(FormatBookingShort(b))
		sb.WriteString("\n\n")
	}

	if len(bookings.Past) > 0 {
		fmt.Fprintf(&sb, "\n🗂 <b>Прошедшие</b> (%d)\n\n", len(bookings.Past))
		for _, b := range bookings.Past {
			sb.WriteString(FormatBookingShort(b))
			sb.WriteString("\n\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatQueueStatus форматирует состояние очереди и позицию пациента
func FormatQueueStatus(doctor *model.Doctor, queue *model.QueueStatus) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🩺 <b>Очередь</b> %s\n📅 %s\n\n",
		html.EscapeString(FormatDoctorShort(doctor)), FormatDateWithWeekday(queue.Date))
	fmt.Fprintf(&sb, "▶️ Сейчас принимают номер: <b>%d</b>\n", queue.NextNo)
	fmt.Fprintf(&sb, "👥 Ожидают приёма: %d %s\n", queue.TotalWaiting, PluralizePeople(queue.TotalWaiting))

	if p := queue.Position; p != nil {
		fmt.Fprintf(&sb, "\n🔢 Ваш номер: <b>%d</b>\n", p.YourNo)
		if p.PeopleAhead == 0 {
			sb.WriteString("✨ Перед вами никого нет")
		} else {
			fmt.Fprintf(&sb, "⏳ Перед вами: %d %s\n", p.PeopleAhead, PluralizePeople(p.PeopleAhead))
			fmt.Fprintf(&sb, "🕐 Ориентировочно через %d %s (около %s)",
				p.ETAMinutes, PluralizeMinutes(p.ETAMinutes), FormatTime(p.ETATime))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatDaySheet форматирует список записей врача на день для персонала
func FormatDaySheet(doctor *model.Doctor, queue *model.QueueStatus, bookings []*model.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>%s</b>\n📅 %s\n", html.EscapeString(FormatDoctorShort(doctor)), FormatDateWithWeekday(queue.Date))
	fmt.Fprintf(&sb, "✅ Принято до №%d | ▶️ следующий: %d | 👥 ожидают: %d\n\n",
		queue.CurrentRunningNo, queue.NextNo, queue.TotalWaiting)

	if len(bookings) == 0 {
		sb.WriteString("На этот день записей нет")
		return sb.String()
	}

	for _, b := range bookings {
		display := GetBookingStatusDisplay(b.Status)
		fmt.Fprintf(&sb, "%s <b>№%d</b> %s %s, %s\n",
			display.Emoji, b.SequenceNo, b.Time,
			html.EscapeString(b.PatientName), html.EscapeString(b.PatientPhone))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatDayStats форматирует сводку дня
func FormatDayStats(label string, stats model.DayStats) string {
	return fmt.Sprintf("%s (%s): %d %s | 🕐 %d 🩺 %d ✅ %d ❌ %d",
		label, FormatDate(stats.Date), stats.Total, PluralizeBookings(stats.Total),
		stats.Booked, stats.Running, stats.Completed, stats.Cancelled)
}
