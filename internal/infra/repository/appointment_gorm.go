package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID,
			domain.BlockingStatuses,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// --------------------------------------------------
// Appointment (Confirm / Cancel / Complete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability (snapshot em lote)
// --------------------------------------------------

// GetScheduleSnapshot busca todos os insumos do engine para o range.
// Expediente e pausas não levam filtro de data: são recorrentes e não
// expiram. from/to devem chegar no timezone da barbearia.
func (r *AppointmentGormRepository) GetScheduleSnapshot(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) (*schedule.Snapshot, error) {

	rangeStart := from
	rangeEnd := to.AddDate(0, 0, 1) // exclusivo

	snap := &schedule.Snapshot{BarberID: barberID}

	// Expediente recorrente
	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND active = true", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}

	for _, wh := range hours {
		start := schedule.ParseHM(wh.StartTime)
		end := schedule.ParseHM(wh.EndTime)
		if start < 0 || end < 0 {
			continue
		}
		snap.Shifts = append(snap.Shifts, schedule.Shift{
			Weekday: wh.Weekday,
			Start:   start,
			End:     end,
		})
	}

	// Pausas recorrentes e pontuais
	var breaks []models.Break
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Find(&breaks).Error; err != nil {
		return nil, err
	}

	for _, br := range breaks {
		rule := schedule.BreakRule{
			Kind:    br.Kind,
			Weekday: -1,
			Start:   schedule.ParseHM(br.StartTime),
			End:     schedule.ParseHM(br.EndTime),
		}
		if rule.Start < 0 || rule.End < 0 {
			continue
		}
		if br.Weekday != nil {
			rule.Weekday = *br.Weekday
		}
		if br.Date != nil {
			rule.Date = *br.Date
		}
		snap.Breaks = append(snap.Breaks, rule)
	}

	// Folgas no range
	var daysOff []models.DayOff
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND date >= ? AND date < ?",
			barberID, rangeStart, rangeEnd,
		).
		Find(&daysOff).Error; err != nil {
		return nil, err
	}

	for _, off := range daysOff {
		snap.DaysOff = append(snap.DaysOff, off.Date)
	}

	// Overrides que tocam o range
	var overrides []models.AvailabilityOverride
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND start_time < ? AND end_time > ?",
			barberID, rangeEnd, rangeStart,
		).
		Find(&overrides).Error; err != nil {
		return nil, err
	}

	for _, ov := range overrides {
		snap.Overrides = append(snap.Overrides, schedule.Override{
			Kind:  ov.Kind,
			Start: ov.StartTime.In(from.Location()),
			End:   ov.EndTime.In(from.Location()),
		})
	}

	// Agendamentos bloqueantes, com a duração do serviço em lote
	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "service_id", "start_time", "end_time").
		Where(
			"barber_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			barberID, domain.BlockingStatuses, rangeStart, rangeEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	durations, err := r.serviceDurations(ctx, apps)
	if err != nil {
		return nil, err
	}

	for _, ap := range apps {
		dur, ok := durations[ap.ServiceID]
		if !ok {
			// serviço removido: cai no intervalo gravado no agendamento
			dur = int(ap.EndTime.Sub(ap.StartTime).Minutes())
		}
		snap.Bookings = append(snap.Bookings, schedule.Booking{
			Start:       ap.StartTime.In(from.Location()),
			DurationMin: dur,
		})
	}

	return snap, nil
}

func (r *AppointmentGormRepository) serviceDurations(
	ctx context.Context,
	apps []models.Appointment,
) (map[uint]int, error) {

	ids := make([]uint, 0, len(apps))
	seen := map[uint]bool{}
	for _, ap := range apps {
		if ap.ServiceID == 0 || seen[ap.ServiceID] {
			continue
		}
		seen[ap.ServiceID] = true
		ids = append(ids, ap.ServiceID)
	}

	durations := map[uint]int{}
	if len(ids) == 0 {
		return durations, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Select("id", "duration_min").
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}

	for _, svc := range services {
		durations[svc.ID] = svc.DurationMin
	}
	return durations, nil
}

// --------------------------------------------------
// Listagens
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
