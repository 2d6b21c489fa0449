package models

import "time"

// DayOff remove a data inteira da agenda, acima de qualquer outra regra.
type DayOff struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Date time.Time `gorm:"index" json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
