package schedule

import "time"

// ===============================
// Snapshot da agenda de um barbeiro
// ===============================

// Todos os horários de um snapshot devem estar na mesma location
// (o timezone da barbearia); o engine não converte fusos.

const (
	// SlotStepMinutes é o passo fixo da grade de horários.
	// A duração do serviço filtra quais inícios cabem, não muda o passo.
	SlotStepMinutes = 30

	// DefaultSlotMinutes é a duração usada quando o caller não informa.
	DefaultSlotMinutes = 30
)

// Break kinds
const (
	BreakCustom   = "custom"
	BreakEveryday = "everyday"
	BreakWeekly   = "weekly"
)

// Override kinds
const (
	OverrideOpen   = "open"
	OverrideClosed = "closed"
)

// Shift é uma janela recorrente de expediente (minutos desde meia-noite,
// intervalo semiaberto [Start, End)).
type Shift struct {
	Weekday int
	Start   int
	End     int
}

// BreakRule subtrai tempo do expediente. Date só vale para kind=custom,
// Weekday só para kind=weekly; everyday ignora os dois.
type BreakRule struct {
	Kind    string
	Date    time.Time
	Weekday int
	Start   int
	End     int
}

// Override é uma exceção ad-hoc com timestamps completos: open injeta
// horários, closed remove.
type Override struct {
	Kind  string
	Start time.Time
	End   time.Time
}

// Booking é um agendamento já existente que ocupa tempo.
type Booking struct {
	Start       time.Time
	DurationMin int
}

// Snapshot reúne tudo que o engine precisa, já materializado em memória.
// O engine nunca faz I/O: quem busca os dados é o repositório.
type Snapshot struct {
	BarberID uint

	Shifts    []Shift
	Breaks    []BreakRule
	DaysOff   []time.Time
	Overrides []Override
	Bookings  []Booking
}

// DayAvailability é a saída por data: inícios válidos em HH:MM, ordenados.
type DayAvailability struct {
	Date      string   `json:"date"`
	TimeSlots []string `json:"time_slots"`
}
