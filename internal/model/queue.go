package model

import "time"

// QueueStatus состояние очереди врача на дату
type QueueStatus struct {
	DoctorID         int64 `json:"doctor_id"`
	Date             Date  `json:"date"`
	CurrentRunningNo int   `json:"current_running_no"` // Наибольший номер среди завершённых приёмов, 0 если их нет
	NextNo           int   `json:"next_no"`            // Номер, который будет принят следующим
	TotalWaiting     int   `json:"total_waiting"`      // Количество записей в статусе booked

	Position *QueuePosition `json:"position,omitempty"`
}

// QueuePosition позиция конкретного пациента в очереди
type QueuePosition struct {
	YourNo      int       `json:"your_no"`
	PeopleAhead int       `json:"people_ahead"`
	ETAMinutes  int       `json:"eta_minutes"`
	ETATime     time.Time `json:"eta_time"`
}

// DayStats сводка записей врача за день
type DayStats struct {
	Date      Date `json:"date"`
	Total     int  `json:"total"`
	Booked    int  `json:"booked"`
	Running   int  `json:"running"`
	Completed int  `json:"completed"`
	Cancelled int  `json:"cancelled"`
}

// Dashboard сводка по врачу на вчера, сегодня и завтра
type Dashboard struct {
	DoctorID  int64    `json:"doctor_id"`
	Yesterday DayStats `json:"yesterday"`
	Today     DayStats `json:"today"`
	Tomorrow  DayStats `json:"tomorrow"`
}

// PatientBookings записи пациента, разделённые на предстоящие и прошедшие
type PatientBookings struct {
	Upcoming []*Booking `json:"upcoming"`
	Past     []*Booking `json:"past"`
}
