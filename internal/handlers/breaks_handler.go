package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BreaksHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewBreaksHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *BreaksHandler {
	return &BreaksHandler{db: db, cache: availCache}
}

type CreateBreakRequest struct {
	Kind      string `json:"kind" binding:"required,oneof=custom everyday weekly"`
	Date      string `json:"date"`    // YYYY-MM-DD, obrigatório para custom
	Weekday   *int   `json:"weekday"` // obrigatório para weekly
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Note      string `json:"note"`
}

func (h *BreaksHandler) List(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var breaks []models.Break
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("id ASC").
		Find(&breaks).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_breaks"})
		return
	}

	httpresp.List(c, breaks)
}

func (h *BreaksHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start := schedule.ParseHM(req.StartTime)
	end := schedule.ParseHM(req.EndTime)
	if start < 0 || end < 0 || start >= end {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_window"})
		return
	}

	br := models.Break{
		BarberID:  barberID,
		Kind:      req.Kind,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
	}

	switch req.Kind {
	case models.BreakKindCustom:
		var shop models.Barbershop
		if err := h.db.First(&shop, barbershopID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "barbershop_not_found"})
			return
		}
		date, err := parseDateInShop(&shop, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
			return
		}
		br.Date = &date

	case models.BreakKindWeekly:
		if req.Weekday == nil || *req.Weekday < 0 || *req.Weekday > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_weekday"})
			return
		}
		br.Weekday = req.Weekday

	case models.BreakKindEveryday:
		// sem data nem weekday: vale para sempre
	}

	if err := h.db.Create(&br).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_break"})
		return
	}

	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	writeAudit(h.db, barbershopID, &barberID, "break_created", "break", &br.ID, gin.H{
		"kind": br.Kind,
	})

	c.JSON(http.StatusCreated, br)
}

func (h *BreaksHandler) Delete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	res := h.db.
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.Break{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_break"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "break_not_found"})
		return
	}

	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
