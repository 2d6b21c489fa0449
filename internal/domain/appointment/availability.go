package appointment

import "time"

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint

	From time.Time
	To   time.Time

	// ServiceDurationMin <= 0 usa o default de 30 minutos.
	ServiceDurationMin int

	// Now corta horários já passados na data corrente. Zero desliga o
	// corte (o engine em si nunca lê o relógio).
	Now time.Time
}
