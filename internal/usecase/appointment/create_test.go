package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// bookingRepo cobre o fluxo completo do CreateBooking em memória.
type bookingRepo struct {
	fakeRepo

	shop        *models.Barbershop
	svc         *models.Service
	svcErr      error
	client      *models.Client
	conflictErr error

	created *models.Appointment

	snapshotFrom time.Time
	snapshotTo   time.Time
}

// GetScheduleSnapshot aplica o mesmo filtro de range do repositório
// gorm: folga só entra se date >= from e date < to+1d. Folgas ficam à
// meia-noite no timezone da barbearia, então um from com hora do dia
// as deixaria de fora.
func (r *bookingRepo) GetScheduleSnapshot(_ context.Context, _ uint, from, to time.Time) (*schedule.Snapshot, error) {
	r.snapshotFrom = from
	r.snapshotTo = to

	snap := *r.snapshot
	snap.DaysOff = nil

	rangeEnd := to.AddDate(0, 0, 1)
	for _, off := range r.snapshot.DaysOff {
		if !off.Before(from) && off.Before(rangeEnd) {
			snap.DaysOff = append(snap.DaysOff, off)
		}
	}

	return &snap, nil
}

func (r *bookingRepo) GetBarbershopByID(context.Context, uint) (*models.Barbershop, error) {
	return r.shop, nil
}

func (r *bookingRepo) GetService(context.Context, uint, uint) (*models.Service, error) {
	if r.svcErr != nil {
		return nil, r.svcErr
	}
	return r.svc, nil
}

func (r *bookingRepo) GetOrCreateClient(context.Context, uint, string, string, string) (*models.Client, error) {
	return r.client, nil
}

func (r *bookingRepo) AssertNoTimeConflict(context.Context, uint, time.Time, time.Time) error {
	return r.conflictErr
}

func (r *bookingRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.created = ap
	return nil
}

func newBookingRepo() *bookingRepo {
	return &bookingRepo{
		fakeRepo: fakeRepo{snapshot: &schedule.Snapshot{
			BarberID: 1,
			Shifts: []schedule.Shift{
				{Weekday: int(time.Monday), Start: schedule.ParseHM("09:00"), End: schedule.ParseHM("18:00")},
			},
		}},
		shop:   &models.Barbershop{ID: 1, Timezone: "UTC", MinAdvanceMinutes: 120},
		svc:    &models.Service{ID: 3, BarbershopID: 1, Name: "Corte", DurationMin: 30},
		client: &models.Client{ID: 7, BarbershopID: 1, Name: "João"},
	}
}

// 2030-06-10 é uma segunda-feira bem no futuro: passa a antecedência
// mínima sem depender do relógio do teste.
const farMonday = "2030-06-10"

func bookingInput() CreateBookingInput {
	return CreateBookingInput{
		BarbershopID: 1,
		BarberID:     1,
		ClientName:   "João",
		ClientPhone:  "11999990000",
		ServiceID:    3,
		Date:         farMonday,
		Time:         "10:00",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	repo := newBookingRepo()
	uc := NewCreateBooking(repo, nil, nil)

	ap, err := uc.Execute(context.Background(), bookingInput())
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.Len(t, ap.Code, 36)
	assert.Equal(t, uint(7), ap.ClientID)
	assert.Equal(t, uint(3), ap.ServiceID)
	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, farMonday+" 10:00", ap.StartTime.Format("2006-01-02 15:04"))
	assert.Equal(t, 30*time.Minute, ap.EndTime.Sub(ap.StartTime))

	// o snapshot cobre a data inteira, a partir da meia-noite
	assert.Equal(t, farMonday+" 00:00", repo.snapshotFrom.Format("2006-01-02 15:04"))
	assert.Equal(t, repo.snapshotFrom, repo.snapshotTo)
}

func TestCreateBooking_DayOffRejected(t *testing.T) {
	repo := newBookingRepo()
	// folga gravada à meia-noite, como faz a borda de escrita
	repo.snapshot.DaysOff = []time.Time{
		time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC),
	}
	uc := NewCreateBooking(repo, nil, nil)

	// reserva no meio do dia: a folga da própria data tem que barrar
	_, err := uc.Execute(context.Background(), bookingInput())
	assert.True(t, httperr.IsBusiness(err, "day_off"))
	assert.Nil(t, repo.created)
}

func TestCreateBooking_InvalidDateOrTime(t *testing.T) {
	uc := NewCreateBooking(newBookingRepo(), nil, nil)

	in := bookingInput()
	in.Time = "10h00"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateBooking_TooSoon(t *testing.T) {
	uc := NewCreateBooking(newBookingRepo(), nil, nil)

	in := bookingInput()
	in.Date = "2020-01-06" // segunda-feira no passado

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateBooking_ServiceNotFound(t *testing.T) {
	repo := newBookingRepo()
	repo.svcErr = httperr.ErrBusiness("service_not_found")
	uc := NewCreateBooking(repo, nil, nil)

	_, err := uc.Execute(context.Background(), bookingInput())
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateBooking_RejectedBySchedule(t *testing.T) {
	repo := newBookingRepo()
	// segunda sem expediente: engine barra antes de tocar o banco
	repo.snapshot = &schedule.Snapshot{BarberID: 1}
	uc := NewCreateBooking(repo, nil, nil)

	_, err := uc.Execute(context.Background(), bookingInput())
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
	assert.Nil(t, repo.created)
}

func TestCreateBooking_ConflictBarrier(t *testing.T) {
	repo := newBookingRepo()
	repo.conflictErr = httperr.ErrBusiness("time_conflict")
	uc := NewCreateBooking(repo, nil, nil)

	_, err := uc.Execute(context.Background(), bookingInput())
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Nil(t, repo.created)
}
