package schedule

import (
	"sort"
	"time"
)

// Compute gera os horários livres do snapshot para cada data em
// [from, to], inclusive. Datas sem nenhum horário válido não aparecem
// no resultado (não viram entrada vazia).
//
// Função pura: mesmo snapshot, mesmo resultado.
func Compute(s Snapshot, from, to time.Time, durationMin int) []DayAvailability {
	if durationMin <= 0 {
		durationMin = DefaultSlotMinutes
	}

	var days []DayAvailability

	for d := dateOnly(from); !d.After(dateOnly(to)); d = d.AddDate(0, 0, 1) {

		// Day-off vence tudo, inclusive override open.
		if s.isDayOff(d) {
			continue
		}

		weekday := int(d.Weekday())
		accepted := map[int]struct{}{}

		// 1️⃣ Grade base: cada turno do weekday gera sua própria grade.
		// Um serviço nunca atravessa dois turnos, mesmo contíguos.
		for _, sh := range s.Shifts {
			if sh.Weekday != weekday {
				continue
			}

			for t := sh.Start; t+durationMin <= sh.End; t += SlotStepMinutes {
				if s.blockedAt(d, weekday, t, t+durationMin) {
					continue
				}
				accepted[t] = struct{}{}
			}
		}

		// 2️⃣ Overrides open injetam horários direto, sem refiltrar por
		// pausa/agendamento: tempo autorizado pelo admin.
		for _, ov := range s.Overrides {
			if ov.Kind != OverrideOpen || !sameDay(ov.Start, d) {
				continue
			}

			end := minuteOf(ov.End)
			if !sameDay(ov.End, d) {
				// override que passa da meia-noite: limita ao próprio dia
				end = 24 * 60
			}

			for t := minuteOf(ov.Start); t < end; t += SlotStepMinutes {
				accepted[t] = struct{}{}
			}
		}

		if len(accepted) == 0 {
			continue
		}

		slots := make([]int, 0, len(accepted))
		for t := range accepted {
			slots = append(slots, t)
		}
		sort.Ints(slots)

		out := make([]string, len(slots))
		for i, t := range slots {
			out[i] = FormatHM(t)
		}

		days = append(days, DayAvailability{
			Date:      d.Format("2006-01-02"),
			TimeSlots: out,
		})
	}

	return days
}

// isDayOff testa se a data tem folga cadastrada.
func (s Snapshot) isDayOff(d time.Time) bool {
	for _, off := range s.DaysOff {
		if sameDay(off, d) {
			return true
		}
	}
	return false
}

// blockedAt testa o intervalo candidato [start, end) em minutos do dia d
// contra pausas, agendamentos e overrides closed.
func (s Snapshot) blockedAt(d time.Time, weekday, start, end int) bool {
	return s.breakConflict(d, weekday, start, end) ||
		s.bookingConflict(d, start, end) ||
		s.closedConflict(d, start, end)
}

func (s Snapshot) breakConflict(d time.Time, weekday, start, end int) bool {
	for _, br := range s.Breaks {
		switch br.Kind {
		case BreakEveryday:
			// sem data-limite: pausas não expiram
		case BreakWeekly:
			if br.Weekday != weekday {
				continue
			}
		case BreakCustom:
			if !sameDay(br.Date, d) {
				continue
			}
		default:
			continue
		}

		if overlaps(start, end, br.Start, br.End) {
			return true
		}
	}
	return false
}

func (s Snapshot) bookingConflict(d time.Time, start, end int) bool {
	for _, b := range s.Bookings {
		if !sameDay(b.Start, d) {
			continue
		}
		bStart := minuteOf(b.Start)
		if overlaps(start, end, bStart, bStart+b.DurationMin) {
			return true
		}
	}
	return false
}

func (s Snapshot) closedConflict(d time.Time, start, end int) bool {
	for _, ov := range s.Overrides {
		if ov.Kind != OverrideClosed {
			continue
		}

		ovStart, ovEnd := ov.clampToDay(d)
		if ovStart < 0 {
			continue
		}
		if overlaps(start, end, ovStart, ovEnd) {
			return true
		}
	}
	return false
}

// clampToDay projeta o range absoluto do override nos minutos do dia d.
// Retorna (-1, -1) se o override não toca o dia.
func (ov Override) clampToDay(d time.Time) (int, int) {
	dayStart := dateOnly(d)
	dayEnd := dayStart.AddDate(0, 0, 1)

	if !ov.Start.Before(dayEnd) || !ov.End.After(dayStart) {
		return -1, -1
	}

	start := 0
	if ov.Start.After(dayStart) {
		start = minuteOf(ov.Start)
	}
	end := 24 * 60
	if ov.End.Before(dayEnd) {
		end = minuteOf(ov.End)
	}
	return start, end
}
