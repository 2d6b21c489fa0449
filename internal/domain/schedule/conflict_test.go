package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func checkSnapshot() Snapshot {
	return Snapshot{
		Shifts: []Shift{mondayShift("09:00", "18:00")},
		Breaks: []BreakRule{
			{Kind: BreakEveryday, Weekday: -1, Start: ParseHM("12:00"), End: ParseHM("13:00")},
		},
		Bookings: []Booking{
			{Start: at(monday, "10:00"), DurationMin: 30},
		},
		Overrides: []Override{
			{Kind: OverrideClosed, Start: at(monday, "15:00"), End: at(monday, "16:00")},
		},
	}
}

func TestCheckSlot_Accepted(t *testing.T) {
	assert.NoError(t, CheckSlot(checkSnapshot(), monday, ParseHM("09:00"), 30))
	assert.NoError(t, CheckSlot(checkSnapshot(), monday, ParseHM("13:00"), 30))

	// extremos encostados não conflitam
	assert.NoError(t, CheckSlot(checkSnapshot(), monday, ParseHM("09:30"), 30))
	assert.NoError(t, CheckSlot(checkSnapshot(), monday, ParseHM("10:30"), 30))
	assert.NoError(t, CheckSlot(checkSnapshot(), monday, ParseHM("11:30"), 30))
}

func TestCheckSlot_DayOff(t *testing.T) {
	snap := checkSnapshot()
	snap.DaysOff = []time.Time{monday}
	// folga vence até override open
	snap.Overrides = append(snap.Overrides, Override{
		Kind: OverrideOpen, Start: at(monday, "09:00"), End: at(monday, "18:00"),
	})

	err := CheckSlot(snap, monday, ParseHM("09:00"), 30)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "day_off"))
}

func TestCheckSlot_OutsideWorkingHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		dur   int
	}{
		{"antes da abertura", "08:30", 30},
		{"depois do fechamento", "18:00", 30},
		{"não cabe até o fim do turno", "17:45", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSlot(checkSnapshot(), monday, ParseHM(tt.start), tt.dur)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
		})
	}
}

func TestCheckSlot_SplitShiftsDontSpan(t *testing.T) {
	snap := Snapshot{
		Shifts: []Shift{
			mondayShift("09:00", "12:00"),
			mondayShift("12:00", "15:00"),
		},
	}

	// 11:30 + 60min atravessa os dois turnos contíguos
	err := CheckSlot(snap, monday, ParseHM("11:30"), 60)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	assert.NoError(t, CheckSlot(snap, monday, ParseHM("11:00"), 60))
	assert.NoError(t, CheckSlot(snap, monday, ParseHM("12:00"), 60))
}

func TestCheckSlot_BreakConflict(t *testing.T) {
	err := CheckSlot(checkSnapshot(), monday, ParseHM("12:30"), 30)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "break_conflict"))

	// 11:45 + 30min invade o almoço
	err = CheckSlot(checkSnapshot(), monday, ParseHM("11:45"), 30)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "break_conflict"))
}

func TestCheckSlot_TimeConflict(t *testing.T) {
	err := CheckSlot(checkSnapshot(), monday, ParseHM("10:00"), 30)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	err = CheckSlot(checkSnapshot(), monday, ParseHM("09:45"), 30)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCheckSlot_ClosedPeriod(t *testing.T) {
	err := CheckSlot(checkSnapshot(), monday, ParseHM("15:30"), 30)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "closed_period"))
}

func TestCheckSlot_OpenOverrideAcceptsDirectly(t *testing.T) {
	snap := Snapshot{
		// sem expediente na segunda
		Breaks: []BreakRule{
			{Kind: BreakEveryday, Weekday: -1, Start: ParseHM("19:00"), End: ParseHM("20:00")},
		},
		Overrides: []Override{
			{Kind: OverrideOpen, Start: at(monday, "19:00"), End: at(monday, "21:00")},
		},
	}

	// dentro da janela open aceita mesmo sobre a pausa, espelhando o Compute
	assert.NoError(t, CheckSlot(snap, monday, ParseHM("19:00"), 30))
	assert.NoError(t, CheckSlot(snap, monday, ParseHM("20:30"), 30))

	// fora da janela volta para a regra normal
	err := CheckSlot(snap, monday, ParseHM("21:00"), 30)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}
