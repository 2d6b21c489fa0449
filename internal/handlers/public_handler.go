package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// Limite de range por chamada: evita varrer meses de grade numa request
const maxAvailabilityRangeDays = 62

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewPublicHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *PublicHandler {
	logger := audit.New(db)
	dispatcher := audit.NewDispatcher(logger)

	return &PublicHandler{
		db:    db,
		audit: dispatcher,
		cache: availCache,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("barbershop_id = ? AND active = true", shop.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"services":   services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability devolve, por data em [from, to], os inícios livres da
// grade de 30 minutos. O range é inclusivo; datas sem horário não
// aparecem na resposta.
func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" {
		fromStr = c.Query("date") // compat: uma data só
	}
	if toStr == "" {
		toStr = fromStr
	}
	if fromStr == "" {
		httperr.BadRequest(c, "missing_params", "Informe from/to ou date.")
		return
	}

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	barber, err := h.resolveBarber(c, &shop)
	if err != nil {
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	durationMin, err := h.resolveDuration(c, &shop)
	if err != nil {
		httperr.BadRequest(c, "invalid_service", "Serviço inválido.")
		return
	}

	from, err := parseDateInShop(&shop, fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	to, err := parseDateInShop(&shop, toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	// validação de range é responsabilidade do caller, não do engine
	if from.After(to) {
		httperr.BadRequest(c, "invalid_range", "Data inicial depois da final.")
		return
	}
	if to.Sub(from).Hours() > 24*maxAvailabilityRangeDays {
		httperr.BadRequest(c, "range_too_large", "Intervalo de datas muito grande.")
		return
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := appointment.NewGetAvailability(repo, h.cache)

	days, err := uc.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarbershopID:       shop.ID,
			BarberID:           barber.ID,
			From:               from,
			To:                 to,
			ServiceDurationMin: durationMin,
			Now:                nowInShop(&shop),
		},
	)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id":    barber.ID,
		"from":         from.Format("2006-01-02"),
		"to":           to.Format("2006-01-02"),
		"duration_min": durationMin,
		"days":         days,
	})
}

// resolveBarber aceita barber_id explícito ou cai no owner da barbearia.
func (h *PublicHandler) resolveBarber(c *gin.Context, shop *models.Barbershop) (*models.User, error) {
	var barber models.User

	if idStr := c.Query("barber_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return nil, err
		}
		if err := h.db.
			Where("id = ? AND barbershop_id = ?", id, shop.ID).
			First(&barber).Error; err != nil {
			return nil, err
		}
		return &barber, nil
	}

	if err := h.db.
		Where("barbershop_id = ? AND role = ?", shop.ID, "owner").
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// resolveDuration resolve a duração a partir de service_id ou do
// parâmetro duration; sem nenhum dos dois cai no default de 30.
func (h *PublicHandler) resolveDuration(c *gin.Context, shop *models.Barbershop) (int, error) {
	if idStr := c.Query("service_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return 0, err
		}

		var svc models.Service
		if err := h.db.
			Where("id = ? AND barbershop_id = ? AND active = true", id, shop.ID).
			First(&svc).Error; err != nil {
			return 0, err
		}
		if svc.DurationMin > 0 {
			return svc.DurationMin, nil
		}
		return schedule.DefaultSlotMinutes, nil
	}

	if durStr := c.Query("duration"); durStr != "" {
		dur, err := strconv.Atoi(durStr)
		if err != nil || dur <= 0 {
			return 0, strconv.ErrSyntax
		}
		return dur, nil
	}

	return schedule.DefaultSlotMinutes, nil
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (PUBLIC → REUSA O USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Barbershop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	barber, err := h.resolveBarber(c, &shop)
	if err != nil {
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := appointment.NewCreateBooking(repo, h.audit, h.cache)

	ap, err := uc.Execute(
		c.Request.Context(),
		appointment.CreateBookingInput{
			BarbershopID: shop.ID,
			BarberID:     barber.ID,
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

	c.JSON(http.StatusCreated, ap)
}
