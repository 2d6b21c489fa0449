package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Overrides são exceções pontuais: open injeta horários fora do
// expediente (ex.: sábado estendido), closed bloqueia uma faixa.
type OverridesHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewOverridesHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *OverridesHandler {
	return &OverridesHandler{db: db, cache: availCache}
}

type CreateOverrideRequest struct {
	Kind  string `json:"kind" binding:"required,oneof=open closed"`
	Date  string `json:"date" binding:"required"`       // YYYY-MM-DD
	Start string `json:"start_time" binding:"required"` // HH:MM
	End   string `json:"end_time" binding:"required"`   // HH:MM
	Note  string `json:"note"`
}

func (h *OverridesHandler) List(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var overrides []models.AvailabilityOverride
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("start_time ASC").
		Find(&overrides).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_overrides"})
		return
	}

	httpresp.List(c, overrides)
}

func (h *OverridesHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "barbershop_not_found"})
		return
	}

	start, err := parseDateTimeInShop(&shop, req.Date, req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_start_time"})
		return
	}

	end, err := parseDateTimeInShop(&shop, req.Date, req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_end_time"})
		return
	}

	if !start.Before(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_window"})
		return
	}

	ov := models.AvailabilityOverride{
		BarberID:  barberID,
		Kind:      req.Kind,
		StartTime: start,
		EndTime:   end,
		Note:      req.Note,
		CreatedBy: barberID,
	}

	if err := h.db.Create(&ov).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_override"})
		return
	}

	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	writeAudit(h.db, barbershopID, &barberID, "override_created", "override", &ov.ID, gin.H{
		"kind": ov.Kind,
	})

	c.JSON(http.StatusCreated, ov)
}

func (h *OverridesHandler) Delete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	res := h.db.
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.AvailabilityOverride{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_override"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "override_not_found"})
		return
	}

	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
