package models

import "time"

// Break kinds
const (
	BreakKindCustom   = "custom"   // uma data específica
	BreakKindEveryday = "everyday" // todos os dias
	BreakKindWeekly   = "weekly"   // um weekday por semana
)

type Break struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Kind string `gorm:"size:20;not null" json:"kind"`

	// Date só para kind=custom, Weekday só para kind=weekly.
	Date    *time.Time `json:"date"`
	Weekday *int       `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Note string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
