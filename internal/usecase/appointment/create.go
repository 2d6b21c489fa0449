package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	availCache *cache.AvailabilityCache,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		cache: availCache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Barbearia
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone da barbearia
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4️⃣ Serviço
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	durationMin := svc.DurationMin
	if durationMin <= 0 {
		durationMin = schedule.DefaultSlotMinutes
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	// --------------------------------------------------
	// 5️⃣ Revalidação pelo engine: mesmo conjunto de regras
	// da disponibilidade exibida (expediente, pausas, folgas,
	// overrides, agendamentos)
	// --------------------------------------------------

	// O snapshot é buscado a partir da meia-noite da data: folgas e
	// overrides são gravados à meia-noite no timezone da barbearia, e um
	// range começando no horário da reserva os deixaria de fora.
	day := time.Date(
		start.Year(), start.Month(), start.Day(),
		0, 0, 0, 0,
		start.Location(),
	)

	snap, err := uc.repo.GetScheduleSnapshot(ctx, in.BarberID, day, day)
	if err != nil {
		return nil, err
	}

	startMin := start.Hour()*60 + start.Minute()
	if err := schedule.CheckSlot(*snap, start, startMin, durationMin); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Barreira transacional no banco
	// --------------------------------------------------
	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		in.BarberID,
		start,
		end,
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Criação do agendamento
	// --------------------------------------------------
	ap := &models.Appointment{
		Code:         uuid.NewString(),
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		ServiceID:    svc.ID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.InvalidateBarber(ctx, in.BarberID)

	// --------------------------------------------------
	// 9️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
