package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"

	// StatusScheduled é legado de antes do fluxo de confirmação;
	// linhas antigas continuam ocupando horário.
	StatusScheduled Status = "scheduled"
)

// BlockingStatuses são os status que ocupam tempo na agenda.
var BlockingStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusScheduled),
}

// ===============================
// Validations
// ===============================

// CanConfirm define se um agendamento pode ser confirmado
func CanConfirm(current Status) error {
	if current != StatusPending && current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed, StatusScheduled:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusConfirmed && current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusPending
}
