package model

import "time"

// Doctor врач из справочника клиники
type Doctor struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Specialty  string    `json:"specialty"`
	City       string    `json:"city"`
	Hospital   string    `json:"hospital"`
	Department string    `json:"department"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}
