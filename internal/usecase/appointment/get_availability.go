package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{repo: repo, cache: availCache}
}

// Execute devolve os horários livres por data em [From, To]. Datas sem
// horário não entram no resultado. O cache guarda a resposta crua do
// engine; o corte por Now acontece depois, para a entrada cacheada não
// depender do relógio.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]schedule.DayAvailability, error) {

	durationMin := in.ServiceDurationMin
	if durationMin <= 0 {
		durationMin = schedule.DefaultSlotMinutes
	}

	fromStr := in.From.Format("2006-01-02")
	toStr := in.To.Format("2006-01-02")

	days, hit := uc.cache.Get(ctx, in.BarberID, fromStr, toStr, durationMin)
	if !hit {
		snap, err := uc.repo.GetScheduleSnapshot(ctx, in.BarberID, in.From, in.To)
		if err != nil {
			return nil, err
		}

		days = schedule.Compute(*snap, in.From, in.To, durationMin)
		uc.cache.Set(ctx, in.BarberID, fromStr, toStr, durationMin, days)
	}

	if !in.Now.IsZero() {
		days = trimPast(days, in.Now)
	}

	return days, nil
}

// trimPast remove datas já passadas e, na data corrente, os inícios que
// não começam depois de now.
func trimPast(days []schedule.DayAvailability, now time.Time) []schedule.DayAvailability {
	today := now.Format("2006-01-02")
	nowHM := now.Format("15:04")

	out := make([]schedule.DayAvailability, 0, len(days))
	for _, day := range days {
		if day.Date < today {
			continue
		}
		if day.Date > today {
			out = append(out, day)
			continue
		}

		var slots []string
		for _, hm := range day.TimeSlots {
			if hm > nowHM {
				slots = append(slots, hm)
			}
		}
		if len(slots) == 0 {
			continue
		}
		out = append(out, schedule.DayAvailability{Date: day.Date, TimeSlots: slots})
	}
	return out
}
