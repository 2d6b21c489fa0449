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

type DaysOffHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewDaysOffHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *DaysOffHandler {
	return &DaysOffHandler{db: db, cache: availCache}
}

type CreateDayOffRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

func (h *DaysOffHandler) List(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var daysOff []models.DayOff
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("date ASC").
		Find(&daysOff).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_days_off"})
		return
	}

	httpresp.List(c, daysOff)
}

func (h *DaysOffHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateDayOffRequest
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

	date, err := parseDateInShop(&shop, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	var count int64
	h.db.Model(&models.DayOff{}).
		Where("barber_id = ? AND date = ?", barberID, date).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day_off_already_exists"})
		return
	}

	off := models.DayOff{
		BarberID: barberID,
		Date:     date,
	}

	if err := h.db.Create(&off).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_day_off"})
		return
	}

	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	writeAudit(h.db, barbershopID, &barberID, "day_off_created", "day_off", &off.ID, gin.H{
		"date": req.Date,
	})

	c.JSON(http.StatusCreated, off)
}

func (h *DaysOffHandler) Delete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	res := h.db.
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.DayOff{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_day_off"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "day_off_not_found"})
		return
	}

	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
