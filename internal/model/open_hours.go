package model

import "time"

// OpenHours интервал приёма врача в день недели.
// В один день может быть несколько непересекающихся интервалов, они различаются SlotIndex.
type OpenHours struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctor_id"`
	DayOfWeek int       `json:"day_of_week"` // 1 = Monday, 7 = Sunday
	SlotIndex int       `json:"slot_index"`
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// Exception переопределение расписания врача на конкретную дату.
// Если исключение есть, недельный шаблон на эту дату не используется.
type Exception struct {
	ID        int64      `json:"id"`
	DoctorID  int64      `json:"doctor_id"`
	Date      Date       `json:"date"`
	IsClosed  bool       `json:"is_closed"`
	StartTime *TimeOfDay `json:"start_time,omitempty"`
	EndTime   *TimeOfDay `json:"end_time,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// OpenRange интервал приёма врача на дату, Start < End
type OpenRange struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}
