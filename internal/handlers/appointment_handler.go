package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateBooking
	confirmUC  *ucAppointment.ConfirmAppointment
	completeUC *ucAppointment.CompleteAppointment
	cancelUC   *ucAppointment.CancelAppointment
	byDateUC   *ucAppointment.ListAppointmentsByDate
	byMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateBooking,
	confirmUC *ucAppointment.ConfirmAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	byDateUC *ucAppointment.ListAppointmentsByDate,
	byMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		confirmUC:  confirmUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		byDateUC:   byDateUC,
		byMonthUC:  byMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// mapCreateErrors traduz os códigos de negócio do fluxo de criação
// para respostas HTTP.
func mapCreateErrors(c *gin.Context, err error) {
	for _, code := range []string{
		"invalid_date_or_time",
		"too_soon",
		"service_not_found",
		"day_off",
		"outside_working_hours",
		"break_conflict",
		"time_conflict",
		"closed_period",
	} {
		if httperr.IsBusiness(err, code) {
			httperr.BadRequest(c, code, "Horário indisponível.")
			return
		}
	}

	httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateBookingInput{
			BarbershopID: barbershopID,
			BarberID:     barberID,
			ClientName:   req.ClientName,
			ClientPhone:  req.ClientPhone,
			ClientEmail:  req.ClientEmail,
			ServiceID:    req.ServiceID,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.Notes,
		},
	)
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDateLoose(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.byDateUC.Execute(c.Request.Context(), barberID, barbershopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(200, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.byMonthUC.Execute(c.Request.Context(), barberID, barbershopID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeState(c, func(barbershopID, barberID, id uint) (any, error) {
		return h.confirmUC.Execute(c.Request.Context(), barbershopID, barberID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeState(c, func(barbershopID, barberID, id uint) (any, error) {
		return h.completeUC.Execute(c.Request.Context(), barbershopID, barberID, id)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeState(c, func(barbershopID, barberID, id uint) (any, error) {
		return h.cancelUC.Execute(c.Request.Context(), barbershopID, barberID, id)
	})
}

func (h *AppointmentHandler) changeState(
	c *gin.Context,
	run func(barbershopID, barberID, id uint) (any, error),
) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := run(barbershopID, barberID, uint(id64))
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Transição de status inválida.")
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	c.JSON(200, ap)
}
