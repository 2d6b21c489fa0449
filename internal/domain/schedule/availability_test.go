package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-10 é uma segunda-feira.
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func day(t *testing.T, daysFromMonday int) time.Time {
	t.Helper()
	return monday.AddDate(0, 0, daysFromMonday)
}

func at(d time.Time, hm string) time.Time {
	min := ParseHM(hm)
	return d.Add(time.Duration(min) * time.Minute)
}

func mondayShift(start, end string) Shift {
	return Shift{
		Weekday: int(time.Monday),
		Start:   ParseHM(start),
		End:     ParseHM(end),
	}
}

func TestCompute_LunchBreakAndBookedSlot(t *testing.T) {
	snap := Snapshot{
		BarberID: 1,
		Shifts:   []Shift{mondayShift("09:00", "18:00")},
		Breaks: []BreakRule{
			{Kind: BreakEveryday, Weekday: -1, Start: ParseHM("12:00"), End: ParseHM("13:00")},
		},
		Bookings: []Booking{
			{Start: at(monday, "10:00"), DurationMin: 30},
		},
	}

	days := Compute(snap, monday, monday, 30)
	require.Len(t, days, 1)
	require.Equal(t, "2024-06-10", days[0].Date)

	want := []string{
		"09:00", "09:30",
		"10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30", "17:00", "17:30",
	}
	assert.Equal(t, want, days[0].TimeSlots)
}

func TestCompute_DayOffWinsOverOpenOverride(t *testing.T) {
	snap := Snapshot{
		Shifts:  []Shift{mondayShift("09:00", "18:00")},
		DaysOff: []time.Time{monday},
		Overrides: []Override{
			{Kind: OverrideOpen, Start: at(monday, "19:00"), End: at(monday, "21:00")},
		},
	}

	days := Compute(snap, monday, monday, 30)
	assert.Empty(t, days)
}

func TestCompute_ServiceMustFitBeforeShiftEnd(t *testing.T) {
	// a grade anda de 30 em 30 a partir do início do turno;
	// a duração de 45 só filtra os inícios que não cabem
	snap := Snapshot{
		Shifts: []Shift{mondayShift("09:15", "18:00")},
	}

	days := Compute(snap, monday, monday, 45)
	require.Len(t, days, 1)

	slots := days[0].TimeSlots
	assert.Equal(t, "09:15", slots[0])
	assert.Equal(t, "09:45", slots[1])
	assert.Equal(t, "17:15", slots[len(slots)-1])
	assert.NotContains(t, slots, "17:30")
	assert.NotContains(t, slots, "17:45")
}

func TestCompute_WeeklyBreakOnlyOnItsWeekday(t *testing.T) {
	tuesday := day(t, 1)

	snap := Snapshot{
		Shifts: []Shift{
			mondayShift("09:00", "11:00"),
			{Weekday: int(time.Tuesday), Start: ParseHM("09:00"), End: ParseHM("11:00")},
		},
		Breaks: []BreakRule{
			{Kind: BreakWeekly, Weekday: int(time.Tuesday), Start: ParseHM("09:00"), End: ParseHM("10:00")},
		},
	}

	days := Compute(snap, monday, tuesday, 30)
	require.Len(t, days, 2)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, days[0].TimeSlots)
	assert.Equal(t, []string{"10:00", "10:30"}, days[1].TimeSlots)
}

func TestCompute_CustomBreakOnlyOnItsDate(t *testing.T) {
	nextMonday := day(t, 7)

	snap := Snapshot{
		Shifts: []Shift{mondayShift("09:00", "11:00")},
		Breaks: []BreakRule{
			{Kind: BreakCustom, Weekday: -1, Date: monday, Start: ParseHM("09:00"), End: ParseHM("11:00")},
		},
	}

	days := Compute(snap, monday, nextMonday, 30)

	// a segunda com pausa custom some; a seguinte aparece intacta
	require.Len(t, days, 1)
	assert.Equal(t, "2024-06-17", days[0].Date)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, days[0].TimeSlots)
}

func TestCompute_SplitShiftsDontSpan(t *testing.T) {
	snap := Snapshot{
		Shifts: []Shift{
			mondayShift("09:00", "12:00"),
			mondayShift("12:00", "15:00"),
		},
	}

	// 60 minutos: 11:30 atravessaria os dois turnos contíguos
	days := Compute(snap, monday, monday, 60)
	require.Len(t, days, 1)

	assert.Contains(t, days[0].TimeSlots, "11:00")
	assert.NotContains(t, days[0].TimeSlots, "11:30")
	assert.Contains(t, days[0].TimeSlots, "12:00")
	assert.Equal(t, "14:00", days[0].TimeSlots[len(days[0].TimeSlots)-1])
}

func TestCompute_OverlappingShiftsDeduplicate(t *testing.T) {
	snap := Snapshot{
		Shifts: []Shift{
			mondayShift("09:00", "11:00"),
			mondayShift("10:00", "12:00"),
		},
	}

	days := Compute(snap, monday, monday, 30)
	require.Len(t, days, 1)
	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		days[0].TimeSlots,
	)
}

func TestCompute_OpenOverrideOnClosedWeekday(t *testing.T) {
	// sem expediente na segunda; override abre 19:00–21:00
	snap := Snapshot{
		Overrides: []Override{
			{Kind: OverrideOpen, Start: at(monday, "19:00"), End: at(monday, "21:00")},
		},
	}

	days := Compute(snap, monday, monday, 30)
	require.Len(t, days, 1)
	assert.Equal(t, []string{"19:00", "19:30", "20:00", "20:30"}, days[0].TimeSlots)
}

func TestCompute_OpenOverrideSkipsConflictFilters(t *testing.T) {
	// horário injetado por override não refiltra pausa nem agendamento
	snap := Snapshot{
		Breaks: []BreakRule{
			{Kind: BreakEveryday, Weekday: -1, Start: ParseHM("19:00"), End: ParseHM("20:00")},
		},
		Bookings: []Booking{
			{Start: at(monday, "20:00"), DurationMin: 30},
		},
		Overrides: []Override{
			{Kind: OverrideOpen, Start: at(monday, "19:00"), End: at(monday, "21:00")},
		},
	}

	days := Compute(snap, monday, monday, 30)
	require.Len(t, days, 1)
	assert.Equal(t, []string{"19:00", "19:30", "20:00", "20:30"}, days[0].TimeSlots)
}

func TestCompute_ClosedOverrideRemovesSlots(t *testing.T) {
	snap := Snapshot{
		Shifts: []Shift{mondayShift("09:00", "11:00")},
		Overrides: []Override{
			{Kind: OverrideClosed, Start: at(monday, "09:00"), End: at(monday, "10:00")},
		},
	}

	days := Compute(snap, monday, monday, 30)
	require.Len(t, days, 1)
	assert.Equal(t, []string{"10:00", "10:30"}, days[0].TimeSlots)
}

func TestCompute_FullyClosedDayIsOmitted(t *testing.T) {
	snap := Snapshot{
		Shifts: []Shift{mondayShift("09:00", "11:00")},
		Overrides: []Override{
			{Kind: OverrideClosed, Start: at(monday, "00:00"), End: at(monday.AddDate(0, 0, 1), "00:00")},
		},
	}

	days := Compute(snap, monday, monday, 30)
	assert.Empty(t, days)
}

func TestCompute_TouchingEndpointsDontConflict(t *testing.T) {
	snap := Snapshot{
		Shifts: []Shift{mondayShift("09:00", "11:00")},
		Bookings: []Booking{
			{Start: at(monday, "10:00"), DurationMin: 30},
		},
	}

	days := Compute(snap, monday, monday, 30)
	require.Len(t, days, 1)

	// 09:30 termina exatamente às 10:00 e 10:30 começa no fim: ambos livres
	assert.Equal(t, []string{"09:00", "09:30", "10:30"}, days[0].TimeSlots)
}

func TestCompute_WeekdayWithoutHoursIsOmitted(t *testing.T) {
	sunday := day(t, 6)

	snap := Snapshot{
		Shifts: []Shift{mondayShift("09:00", "10:00")},
	}

	days := Compute(snap, monday, sunday, 30)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-06-10", days[0].Date)
}

func TestCompute_Deterministic(t *testing.T) {
	snap := Snapshot{
		Shifts: []Shift{
			mondayShift("09:00", "12:00"),
			mondayShift("14:00", "18:00"),
		},
		Breaks: []BreakRule{
			{Kind: BreakEveryday, Weekday: -1, Start: ParseHM("10:00"), End: ParseHM("10:30")},
		},
		Bookings: []Booking{
			{Start: at(monday, "15:00"), DurationMin: 60},
		},
		Overrides: []Override{
			{Kind: OverrideOpen, Start: at(monday, "19:00"), End: at(monday, "20:00")},
			{Kind: OverrideClosed, Start: at(monday, "11:00"), End: at(monday, "11:30")},
		},
	}

	first := Compute(snap, monday, day(t, 6), 30)
	second := Compute(snap, monday, day(t, 6), 30)
	assert.Equal(t, first, second)
}

func TestCompute_DefaultDuration(t *testing.T) {
	snap := Snapshot{
		Shifts: []Shift{mondayShift("09:00", "10:00")},
	}

	days := Compute(snap, monday, monday, 0)
	require.Len(t, days, 1)
	assert.Equal(t, []string{"09:00", "09:30"}, days[0].TimeSlots)
}

func TestParseFormatHM(t *testing.T) {
	tests := []struct {
		hm  string
		min int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"17:15", 1035},
		{"23:30", 1410},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.min, ParseHM(tt.hm))
		assert.Equal(t, tt.hm, FormatHM(tt.min))
	}

	assert.Equal(t, -1, ParseHM(""))
	assert.Equal(t, -1, ParseHM("9h30"))
	assert.Equal(t, -1, ParseHM("25:00"))
}
