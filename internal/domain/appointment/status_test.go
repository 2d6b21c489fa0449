package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		check   func(Status) error
		allowed []Status
	}{
		{"confirm", CanConfirm, []Status{StatusPending, StatusScheduled}},
		{"cancel", CanCancel, []Status{StatusPending, StatusConfirmed, StatusScheduled}},
		{"complete", CanComplete, []Status{StatusConfirmed, StatusScheduled}},
	}

	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusScheduled}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, st := range all {
				err := tt.check(st)

				ok := false
				for _, a := range tt.allowed {
					if st == a {
						ok = true
					}
				}

				if ok {
					assert.NoError(t, err, "status %s", st)
				} else {
					assert.True(t, httperr.IsBusiness(err, "invalid_state"), "status %s", st)
				}
			}
		})
	}
}

func TestConfirmSetsTimestamp(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
	assert.Equal(t, now, *ap.ConfirmedAt)

	// confirmar duas vezes falha
	err := Confirm(ap, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelAfterCompleteFails(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)

	err := Cancel(ap, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Nil(t, ap.CancelledAt)
}

func TestLegacyScheduledStillTransitions(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
}
