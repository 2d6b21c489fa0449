package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewWorkingHoursHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, cache: availCache}
}

// Mais de uma janela por weekday é permitido (turnos separados).
type WorkingWindowConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WorkingHoursUpdateRequest struct {
	Windows []WorkingWindowConfig `json:"windows" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	barberID := userIDVal.(uint)

	var hours []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	barberID := userIDVal.(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Validação fica na borda de escrita; o engine assume janelas sãs.
	for _, w := range req.Windows {
		start := schedule.ParseHM(w.StartTime)
		end := schedule.ParseHM(w.EndTime)
		if start < 0 || end < 0 || start >= end {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_window"})
			return
		}
	}

	if err := h.db.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_hours"})
		return
	}

	var toCreate []models.WorkingHours
	for _, w := range req.Windows {
		wh := models.WorkingHours{
			BarberID:  barberID,
			Weekday:   w.Weekday,
			Active:    w.Active,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		}
		toCreate = append(toCreate, wh)
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
			return
		}
	}

	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	writeAudit(h.db, barbershopID, &barberID, "working_hours_updated", "working_hours", nil, gin.H{
		"windows": len(toCreate),
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
