package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// fakeRepo devolve um snapshot fixo; o resto da interface não é usado
// por GetAvailability.
type fakeRepo struct {
	snapshot      *schedule.Snapshot
	snapshotCalls int
}

func (f *fakeRepo) GetScheduleSnapshot(_ context.Context, _ uint, _, _ time.Time) (*schedule.Snapshot, error) {
	f.snapshotCalls++
	return f.snapshot, nil
}

func (f *fakeRepo) GetBarbershopByID(context.Context, uint) (*models.Barbershop, error) {
	return nil, nil
}
func (f *fakeRepo) GetService(context.Context, uint, uint) (*models.Service, error) {
	return nil, nil
}
func (f *fakeRepo) GetOrCreateClient(context.Context, uint, string, string, string) (*models.Client, error) {
	return nil, nil
}
func (f *fakeRepo) CreateAppointment(context.Context, *models.Appointment) error { return nil }
func (f *fakeRepo) AssertNoTimeConflict(context.Context, uint, time.Time, time.Time) error {
	return nil
}
func (f *fakeRepo) GetAppointmentForBarber(context.Context, uint, uint) (*models.Appointment, error) {
	return nil, nil
}
func (f *fakeRepo) UpdateAppointment(context.Context, *models.Appointment) error { return nil }
func (f *fakeRepo) ListAppointmentsForPeriod(context.Context, uint, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// 2024-06-10 é uma segunda-feira.
var testMonday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func mondayMorning() *schedule.Snapshot {
	return &schedule.Snapshot{
		BarberID: 1,
		Shifts: []schedule.Shift{
			{Weekday: int(time.Monday), Start: schedule.ParseHM("09:00"), End: schedule.ParseHM("11:00")},
		},
	}
}

func TestGetAvailability_ComputesFromSnapshot(t *testing.T) {
	repo := &fakeRepo{snapshot: mondayMorning()}
	uc := NewGetAvailability(repo, nil)

	days, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		From:     testMonday,
		To:       testMonday,
	})

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-06-10", days[0].Date)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, days[0].TimeSlots)
	assert.Equal(t, 1, repo.snapshotCalls)
}

func TestGetAvailability_NowTrimsCurrentDay(t *testing.T) {
	repo := &fakeRepo{snapshot: mondayMorning()}
	uc := NewGetAvailability(repo, nil)

	// 09:30 em ponto: o próprio 09:30 não conta, só inícios futuros
	now := testMonday.Add(9*time.Hour + 30*time.Minute)

	days, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		From:     testMonday,
		To:       testMonday,
		Now:      now,
	})

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, []string{"10:00", "10:30"}, days[0].TimeSlots)
}

func TestGetAvailability_NowDropsPastDates(t *testing.T) {
	repo := &fakeRepo{snapshot: mondayMorning()}
	uc := NewGetAvailability(repo, nil)

	days, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		From:     testMonday,
		To:       testMonday,
		Now:      testMonday.AddDate(0, 0, 1),
	})

	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestGetAvailability_FutureDatesUntrimmed(t *testing.T) {
	repo := &fakeRepo{snapshot: mondayMorning()}
	uc := NewGetAvailability(repo, nil)

	nextMonday := testMonday.AddDate(0, 0, 7)

	days, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		From:     testMonday,
		To:       nextMonday,
		Now:      testMonday.Add(23 * time.Hour),
	})

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-06-17", days[0].Date)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, days[0].TimeSlots)
}
