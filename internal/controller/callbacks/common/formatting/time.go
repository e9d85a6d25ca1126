package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDate форматирует календарную дату
func FormatDate(d model.Date) string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, d.Month, d.Year)
}

// FormatDateWithWeekday форматирует дату с днём недели: "Пн, 10.03.2025"
func FormatDateWithWeekday(d model.Date) string {
	return GetWeekdayShortName(d.ISOWeekday()%7) + ", " + FormatDate(d)
}

// FormatDayButton подпись кнопки выбора дня: "Сегодня", "Завтра" или "Ср 12.03"
func FormatDayButton(d, today model.Date) string {
	switch {
	case d.Equal(today):
		return "Сегодня"
	case d.Equal(today.AddDays(1)):
		return "Завтра"
	default:
		return fmt.Sprintf("%s %02d.%02d", GetWeekdayShortName(d.ISOWeekday()%7), d.Day, d.Month)
	}
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayName возвращает название дня недели на русском (0 = воскресенье)
func GetWeekdayName(weekday int) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
