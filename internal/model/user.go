package model

import "time"

// User пользователь Telegram-бота: пациент или сотрудник клиники
type User struct {
	ID            int64     `json:"id"`
	TelegramID    int64     `json:"telegram_id"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	LanguageCode  string    `json:"language_code"`
	Phone         string    `json:"phone"`
	LastDoctorID  *int64    `json:"last_doctor_id"`
	StaffDoctorID *int64    `json:"staff_doctor_id"` // Врач, за которым закреплён сотрудник
	CreatedAt     time.Time `json:"created_at"`
}

// IsStaff возвращает true, если пользователь закреплён за врачом как сотрудник
func (u *User) IsStaff() bool {
	return u.StaffDoctorID != nil
}

// DisplayName имя пользователя для записи к врачу
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
