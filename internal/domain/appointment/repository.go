package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// AssertNoTimeConflict é a barreira transacional no banco, com lock
	// de linha. O CheckSlot do engine roda antes, sobre o snapshot.
	AssertNoTimeConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------

	// GetScheduleSnapshot materializa tudo que o engine precisa para o
	// range [from, to]: expediente e pausas sem filtro de data
	// (recorrentes), folgas e overrides no range, agendamentos
	// bloqueantes já com a duração do serviço resolvida em lote.
	GetScheduleSnapshot(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) (*schedule.Snapshot, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
