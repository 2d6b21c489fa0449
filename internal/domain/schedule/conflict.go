package schedule

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// CheckSlot revalida um início candidato contra o mesmo conjunto de
// regras do Compute, antes de persistir um agendamento. Evita a corrida
// entre exibir disponibilidade e confirmar a reserva.
//
// Códigos de negócio retornados: day_off, outside_working_hours,
// break_conflict, time_conflict, closed_period.
func CheckSlot(s Snapshot, date time.Time, startMin, durationMin int) error {
	if durationMin <= 0 {
		durationMin = DefaultSlotMinutes
	}

	d := dateOnly(date)

	if s.isDayOff(d) {
		return httperr.ErrBusiness("day_off")
	}

	// Dentro de um override open o horário é aceito direto, espelhando a
	// injeção sem filtro do Compute.
	for _, ov := range s.Overrides {
		if ov.Kind != OverrideOpen || !sameDay(ov.Start, d) {
			continue
		}
		end := minuteOf(ov.End)
		if !sameDay(ov.End, d) {
			end = 24 * 60
		}
		if startMin >= minuteOf(ov.Start) && startMin < end {
			return nil
		}
	}

	weekday := int(d.Weekday())
	end := startMin + durationMin

	// O serviço precisa caber inteiro dentro de um único turno.
	fits := false
	for _, sh := range s.Shifts {
		if sh.Weekday != weekday {
			continue
		}
		if startMin >= sh.Start && end <= sh.End {
			fits = true
			break
		}
	}
	if !fits {
		return httperr.ErrBusiness("outside_working_hours")
	}

	if s.breakConflict(d, weekday, startMin, end) {
		return httperr.ErrBusiness("break_conflict")
	}
	if s.bookingConflict(d, startMin, end) {
		return httperr.ErrBusiness("time_conflict")
	}
	if s.closedConflict(d, startMin, end) {
		return httperr.ErrBusiness("closed_period")
	}

	return nil
}
