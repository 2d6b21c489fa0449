package models

import "time"

// Override kinds
const (
	OverrideKindOpen   = "open"   // injeta horários fora do expediente
	OverrideKindClosed = "closed" // bloqueia uma faixa de tempo
)

type AvailabilityOverride struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Kind string `gorm:"size:10;not null" json:"kind"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Note      string `gorm:"size:255" json:"note"`
	CreatedBy uint   `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
